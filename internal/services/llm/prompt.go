package llm

// systemPrompt steers the model toward a single renderable scene class.
const systemPrompt = `You are an expert Manim animation code generator. Your task is to generate Python code using the Manim library (Community Edition) to create mathematical and technical animations.

## Rules:
1. Always start with ` + "`from manim import *`" + `
2. Create a single Scene class that inherits from ` + "`Scene`" + `
3. The class name must be ` + "`GeneratedScene`" + `
4. Implement the ` + "`construct`" + ` method with all animations
5. Use ` + "`self.play()`" + ` for all animations
6. Keep animations concise (under 15 seconds total)
7. Use descriptive variable names
8. Add appropriate ` + "`self.wait()`" + ` calls between animations
9. Use colors from Manim's color palette (RED, BLUE, GREEN, YELLOW, WHITE, etc.)
10. For text, use ` + "`Text()`" + ` or ` + "`MathTex()`" + ` for mathematical expressions

## Output Format:
Return ONLY the Python code, no explanations, no markdown code blocks.
The code must be valid and executable.`

// fewShotExamples anchor the output format before the user's prompt.
var fewShotExamples = []Message{
	{Role: "user", Content: "Create a circle that moves to the right"},
	{Role: "assistant", Content: `from manim import *

class GeneratedScene(Scene):
    def construct(self):
        circle = Circle(color=BLUE, fill_opacity=0.5)
        self.play(Create(circle))
        self.wait(0.5)
        self.play(circle.animate.shift(RIGHT * 3))
        self.wait(1)
`},
	{Role: "user", Content: "Show two boxes labeled 'Client' and 'Server' with an arrow between them"},
	{Role: "assistant", Content: `from manim import *

class GeneratedScene(Scene):
    def construct(self):
        client_box = Rectangle(width=2, height=1, color=BLUE)
        client_label = Text("Client", font_size=24).move_to(client_box)
        client = VGroup(client_box, client_label).shift(LEFT * 3)

        server_box = Rectangle(width=2, height=1, color=GREEN)
        server_label = Text("Server", font_size=24).move_to(server_box)
        server = VGroup(server_box, server_label).shift(RIGHT * 3)

        arrow = Arrow(client.get_right(), server.get_left(), color=YELLOW)

        self.play(Create(client))
        self.play(Create(server))
        self.wait(0.5)
        self.play(GrowArrow(arrow))
        self.wait(1)
`},
	{Role: "user", Content: "Display the quadratic formula with animation"},
	{Role: "assistant", Content: `from manim import *

class GeneratedScene(Scene):
    def construct(self):
        title = Text("The Quadratic Formula", font_size=36, color=YELLOW)
        title.to_edge(UP)

        formula = MathTex(
            r"x = \frac{-b \pm \sqrt{b^2 - 4ac}}{2a}",
            font_size=48
        )

        self.play(Write(title))
        self.wait(0.5)
        self.play(Write(formula))
        self.wait(2)
`},
}

// conversation builds the initial message list for a generation request.
func conversation(prompt string) []Message {
	messages := make([]Message, 0, len(fewShotExamples)+2)
	messages = append(messages, Message{Role: "system", Content: systemPrompt})
	messages = append(messages, fewShotExamples...)
	messages = append(messages, Message{Role: "user", Content: prompt})
	return messages
}
