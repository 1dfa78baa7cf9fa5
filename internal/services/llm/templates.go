package llm

import "strings"

// Demo-mode scene templates, keyed by subject. Served when no API key is
// configured so the whole pipeline stays exercisable offline.
var demoTemplates = map[string]string{
	"circle": `from manim import *

class GeneratedScene(Scene):
    def construct(self):
        circle = Circle(color=BLUE, fill_opacity=0.5)
        self.play(Create(circle))
        self.wait(0.5)
        self.play(circle.animate.scale(1.5))
        self.play(circle.animate.shift(RIGHT * 2))
        self.play(circle.animate.shift(LEFT * 2))
        self.wait(1)
`,
	"square": `from manim import *

class GeneratedScene(Scene):
    def construct(self):
        square = Square(color=RED, fill_opacity=0.5)
        self.play(Create(square))
        self.wait(0.5)
        self.play(Rotate(square, PI/2))
        self.play(square.animate.scale(0.5))
        self.wait(1)
`,
	"triangle": `from manim import *

class GeneratedScene(Scene):
    def construct(self):
        triangle = Triangle(color=GREEN, fill_opacity=0.5)
        self.play(Create(triangle))
        self.wait(0.5)
        self.play(Rotate(triangle, PI))
        self.play(triangle.animate.scale(1.5))
        self.wait(1)
`,
	"transform": `from manim import *

class GeneratedScene(Scene):
    def construct(self):
        circle = Circle(color=BLUE, fill_opacity=0.5)
        square = Square(color=RED, fill_opacity=0.5)
        triangle = Triangle(color=GREEN, fill_opacity=0.5)

        self.play(Create(circle))
        self.wait(0.5)
        self.play(Transform(circle, square))
        self.wait(0.5)
        self.play(Transform(circle, triangle))
        self.wait(1)
`,
	"pythagorean": `from manim import *

class GeneratedScene(Scene):
    def construct(self):
        title = Text("Pythagorean Theorem", font_size=36, color=YELLOW)
        title.to_edge(UP)
        self.play(Write(title))

        triangle = Polygon(
            ORIGIN, RIGHT * 3, RIGHT * 3 + UP * 2,
            color=WHITE, fill_opacity=0.3
        ).shift(LEFT * 1.5 + DOWN * 0.5)

        self.play(Create(triangle))
        self.wait(0.5)

        a_label = MathTex("a").next_to(triangle, DOWN)
        b_label = MathTex("b").next_to(triangle, RIGHT)
        c_label = MathTex("c").move_to(triangle.get_center() + UP * 0.5 + LEFT * 0.5)

        self.play(Write(a_label), Write(b_label), Write(c_label))
        self.wait(0.5)

        formula = MathTex("a^2 + b^2 = c^2", font_size=48)
        formula.to_edge(DOWN)
        self.play(Write(formula))
        self.wait(2)
`,
	"sort": `from manim import *

class GeneratedScene(Scene):
    def construct(self):
        title = Text("Bubble Sort", font_size=36, color=YELLOW)
        title.to_edge(UP)
        self.play(Write(title))

        values = [4, 2, 5, 1, 3]
        bars = VGroup()
        for i, val in enumerate(values):
            bar = Rectangle(width=0.6, height=val * 0.5, fill_opacity=0.7, color=BLUE)
            bar.move_to(RIGHT * (i - 2) * 0.8)
            bars.add(bar)

        self.play(Create(bars))
        self.wait(0.5)

        self.play(
            bars[0].animate.set_color(RED),
            bars[1].animate.set_color(RED)
        )
        self.play(
            bars[0].animate.shift(RIGHT * 0.8),
            bars[1].animate.shift(LEFT * 0.8)
        )
        self.play(
            bars[0].animate.set_color(BLUE),
            bars[1].animate.set_color(BLUE)
        )
        self.wait(1)
`,
	"default": `from manim import *

class GeneratedScene(Scene):
    def construct(self):
        title = Text("Manim Animation", font_size=48, color=BLUE)
        self.play(Write(title))
        self.wait(0.5)

        self.play(title.animate.scale(0.5).to_edge(UP))

        circle = Circle(color=RED, fill_opacity=0.5).shift(LEFT * 2)
        square = Square(color=GREEN, fill_opacity=0.5)
        triangle = Triangle(color=BLUE, fill_opacity=0.5).shift(RIGHT * 2)

        shapes = VGroup(circle, square, triangle)
        self.play(Create(shapes))
        self.wait(0.5)

        self.play(Rotate(shapes, PI/4))
        self.play(shapes.animate.shift(UP))
        self.play(shapes.animate.shift(DOWN))
        self.wait(1)
`,
}

// DemoCode returns a canned scene matched to the prompt's keywords.
func DemoCode(prompt string) string {
	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(lower, "pythagorean") || strings.Contains(lower, "theorem"):
		return demoTemplates["pythagorean"]
	case strings.Contains(lower, "sort") || strings.Contains(lower, "bubble") || strings.Contains(lower, "algorithm"):
		return demoTemplates["sort"]
	case strings.Contains(lower, "transform") || strings.Contains(lower, "morph") || strings.Contains(lower, "change"):
		return demoTemplates["transform"]
	case strings.Contains(lower, "triangle"):
		return demoTemplates["triangle"]
	case strings.Contains(lower, "circle"):
		return demoTemplates["circle"]
	case strings.Contains(lower, "square") || strings.Contains(lower, "rectangle"):
		return demoTemplates["square"]
	default:
		return demoTemplates["default"]
	}
}
