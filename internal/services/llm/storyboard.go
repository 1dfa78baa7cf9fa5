package llm

import (
	"fmt"
	"strings"
)

// PlannedScene is one storyboard part: a short title used as the scene
// prompt and ready-to-render code.
type PlannedScene struct {
	Title string
	Code  string
}

const defaultStoryboardScenes = 5

// Storyboard splits a topic prompt into an ordered sequence of scenes with
// template code for each, sized for a roughly thirty second video. The
// split is keyword driven; unrecognized topics get a generic five part
// arc. numScenes caps the sequence; zero or negative means the default.
func Storyboard(prompt string, numScenes int) []PlannedScene {
	if numScenes <= 0 {
		numScenes = defaultStoryboardScenes
	}
	parts := splitTopic(prompt)
	if len(parts) > numScenes {
		parts = parts[:numScenes]
	}

	planned := make([]PlannedScene, 0, len(parts))
	for i, part := range parts {
		planned = append(planned, PlannedScene{
			Title: part.title,
			Code:  partCode(part, i, len(parts)),
		})
	}
	return planned
}

type storyPart struct {
	title       string
	description string
}

func splitTopic(prompt string) []storyPart {
	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(lower, "sort") || strings.Contains(lower, "bubble"):
		return []storyPart{
			{"Introduction", "Title: Bubble Sort Algorithm"},
			{"Unsorted Array", "Show initial unsorted array of numbers"},
			{"Compare & Swap", "Demonstrate comparing adjacent elements and swapping"},
			{"Multiple Passes", "Show multiple passes through the array"},
			{"Sorted Result", "Show final sorted array with summary"},
		}
	case strings.Contains(lower, "search"):
		return []storyPart{
			{"Introduction", "Title: Binary Search"},
			{"Sorted Array", "Show a sorted array to search in"},
			{"Find Middle", "Highlight the middle element"},
			{"Compare & Narrow", "Compare target with middle, narrow the range"},
			{"Found Target", "Show successful search with complexity O(log n)"},
		}
	case strings.Contains(lower, "neural") || strings.Contains(lower, "network"):
		return []storyPart{
			{"Introduction", "Title: Neural Networks Explained"},
			{"Input Layer", "Show input neurons receiving data"},
			{"Hidden Layers", "Visualize hidden layer processing"},
			{"Weights & Connections", "Animate data flowing through connections"},
			{"Output Layer", "Show final output and prediction"},
		}
	case strings.Contains(lower, "pythagorean") || strings.Contains(lower, "theorem"):
		return []storyPart{
			{"Introduction", "Title: The Pythagorean Theorem"},
			{"Right Triangle", "Draw a right triangle with sides a, b, c"},
			{"Squares on Sides", "Draw squares on each side of the triangle"},
			{"Area Comparison", "Show a squared plus b squared equals c squared"},
			{"Formula", "Display the famous equation"},
		}
	default:
		topic := topicFromPrompt(prompt)
		return []storyPart{
			{"Introduction", "Title: " + topic},
			{"Core Concept", "Explain the main idea of " + topic},
			{"Visualization", "Visual demonstration of " + topic},
			{"Details", "Additional details and examples"},
			{"Summary", "Recap of " + topic + " with key points"},
		}
	}
}

var topicStopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "how": true,
	"what": true, "why": true, "show": true, "explain": true,
	"create": true, "make": true, "visualize": true, "animate": true,
	"demonstrate": true,
}

// topicFromPrompt pulls a short display title out of a freeform prompt.
func topicFromPrompt(prompt string) string {
	var words []string
	for _, word := range strings.Fields(prompt) {
		if len(word) > 3 && !topicStopWords[strings.ToLower(word)] {
			words = append(words, word)
		}
		if len(words) == 4 {
			break
		}
	}
	if len(words) == 0 {
		return "Animation"
	}
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func partCode(part storyPart, index, total int) string {
	switch {
	case index == 0:
		title := part.title
		if _, after, found := strings.Cut(part.description, "Title:"); found {
			title = strings.TrimSpace(after)
		}
		return introCode(title)
	case index == total-1:
		return summaryCode(part.title)
	default:
		return contentCode(part.title, part.description)
	}
}

func introCode(title string) string {
	return fmt.Sprintf(`from manim import *

class GeneratedScene(Scene):
    def construct(self):
        title = Text(%q, font_size=48, color=BLUE)
        self.play(Write(title), run_time=1.5)
        self.wait(1)
        self.play(title.animate.scale(0.7).to_edge(UP))
        subtitle = Text("Let's explore step by step", font_size=24, color=GRAY)
        subtitle.next_to(title, DOWN)
        self.play(FadeIn(subtitle))
        self.wait(1.5)
        self.play(FadeOut(title), FadeOut(subtitle))
`, title)
}

func summaryCode(title string) string {
	return fmt.Sprintf(`from manim import *

class GeneratedScene(Scene):
    def construct(self):
        header = Text(%q, font_size=42, color=YELLOW)
        header.to_edge(UP)
        self.play(Write(header))
        points = VGroup(
            Text("Concept introduced", font_size=26, color=GREEN),
            Text("Steps demonstrated", font_size=26, color=GREEN),
            Text("Visual explanation", font_size=26, color=GREEN),
        ).arrange(DOWN, aligned_edge=LEFT, buff=0.5)
        for point in points:
            self.play(Write(point), run_time=0.5)
            self.wait(0.2)
        self.wait(1)
        thanks = Text("Thanks for watching!", font_size=36, color=BLUE)
        thanks.next_to(points, DOWN, buff=0.8)
        self.play(Write(thanks))
        self.wait(1.5)
`, title)
}

func contentCode(title, description string) string {
	return fmt.Sprintf(`from manim import *

class GeneratedScene(Scene):
    def construct(self):
        header = Text(%q, font_size=32, color=YELLOW).to_edge(UP)
        self.play(Write(header))
        caption = Text(%q, font_size=22, color=WHITE)
        caption.next_to(header, DOWN, buff=0.6)
        self.play(FadeIn(caption))
        boxes = VGroup()
        for i in range(4):
            box = Square(side_length=0.8, color=BLUE, fill_opacity=0.3)
            box.move_to(RIGHT * (i - 1.5) * 1.2)
            boxes.add(box)
        self.play(Create(boxes))
        for box in boxes:
            self.play(box.animate.set_color(GREEN), run_time=0.3)
            self.play(box.animate.set_color(BLUE), run_time=0.3)
        self.wait(1)
        self.play(FadeOut(boxes), FadeOut(caption), FadeOut(header))
`, title, description)
}
