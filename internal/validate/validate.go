package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/parser"
	"github.com/go-python/gpython/py"
)

// Kind classifies why a piece of generated code was rejected.
type Kind string

const (
	EmptyCode        Kind = "empty_code"
	SyntaxInvalid    Kind = "syntax_invalid"
	UnsafeConstruct  Kind = "unsafe_construct"
	StructureInvalid Kind = "structure_invalid"
)

// ValidationError describes a rejected script. Line is only set for syntax
// failures; Patterns is only set for unsafe-construct failures.
type ValidationError struct {
	Kind     Kind
	Line     int
	Patterns []string
	Message  string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case SyntaxInvalid:
		if e.Line > 0 {
			return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Message)
		}
		return fmt.Sprintf("syntax error: %s", e.Message)
	case UnsafeConstruct:
		return fmt.Sprintf("code contains dangerous patterns: %s", strings.Join(e.Patterns, ", "))
	default:
		return e.Message
	}
}

// IsValidationError reports whether err is a ValidationError and returns it.
func IsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// Validate gates generated scripts before they reach the render engine. It
// never executes any of the code it inspects. Checks run in a fixed order
// and fail fast: emptiness, syntax, dangerous patterns, structural shape.
func Validate(code string) error {
	if strings.TrimSpace(code) == "" {
		return &ValidationError{Kind: EmptyCode, Message: "code is empty"}
	}

	module, err := parser.ParseString(code, py.ExecMode)
	if err != nil {
		line, msg := syntaxDetails(err)
		return &ValidationError{Kind: SyntaxInvalid, Line: line, Message: msg}
	}

	if matched := scanDangerous(code); len(matched) > 0 {
		return &ValidationError{Kind: UnsafeConstruct, Patterns: matched}
	}

	return checkStructure(module)
}

// checkStructure verifies the parsed module imports manim, declares a Scene
// subclass, and gives that class a construct method.
func checkStructure(module ast.Ast) error {
	hasImport := false
	hasSceneClass := false
	hasConstruct := false

	ast.Walk(module, func(node ast.Ast) bool {
		switch stmt := node.(type) {
		case *ast.ImportFrom:
			if string(stmt.Module) == "manim" {
				hasImport = true
			}
		case *ast.Import:
			for _, alias := range stmt.Names {
				if string(alias.Name) == "manim" {
					hasImport = true
				}
			}
		case *ast.ClassDef:
			if !classExtendsScene(stmt) {
				return true
			}
			hasSceneClass = true
			for _, item := range stmt.Body {
				if fn, ok := item.(*ast.FunctionDef); ok && string(fn.Name) == "construct" {
					hasConstruct = true
				}
			}
		}
		return true
	})

	switch {
	case !hasImport:
		return &ValidationError{
			Kind:    StructureInvalid,
			Message: "code must import from manim (e.g. 'from manim import *')",
		}
	case !hasSceneClass:
		return &ValidationError{
			Kind:    StructureInvalid,
			Message: "code must define a class that inherits from Scene",
		}
	case !hasConstruct:
		return &ValidationError{
			Kind:    StructureInvalid,
			Message: "Scene class must have a construct method",
		}
	}
	return nil
}

func classExtendsScene(class *ast.ClassDef) bool {
	for _, base := range class.Bases {
		switch b := base.(type) {
		case *ast.Name:
			if string(b.Id) == "Scene" {
				return true
			}
		case *ast.Attribute:
			if string(b.Attr) == "Scene" {
				return true
			}
		}
	}
	return false
}

var syntaxLineRe = regexp.MustCompile(`line (\d+)`)

// syntaxDetails pulls the line number and message out of a parse error. The
// parser reports errors as python SyntaxError exceptions; fall back to
// scraping the rendered message when the attributes are absent.
func syntaxDetails(err error) (int, string) {
	msg := err.Error()
	line := 0

	var exc *py.Exception
	if errors.As(err, &exc) {
		if v, ok := exc.Dict["lineno"]; ok {
			if n, ok := v.(py.Int); ok {
				line = int(n)
			}
		}
		if v, ok := exc.Dict["msg"]; ok {
			if s, ok := v.(py.String); ok && string(s) != "" {
				msg = string(s)
			}
		}
	}

	if line == 0 {
		if m := syntaxLineRe.FindStringSubmatch(msg); m != nil {
			if n, convErr := strconv.Atoi(m[1]); convErr == nil {
				line = n
			}
		}
	}
	return line, msg
}
