// Package validate gates machine-generated manim scripts before they are
// handed to the render engine. Validation is pure analysis over the source
// text and its syntax tree; the validator never executes any of the code.
package validate
