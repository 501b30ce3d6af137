// Command exprspace-demo shows basic library usage: building atoms,
// asserting rewrite rules and types, and driving a Session to interpret
// a small logic program. It is a library-usage demonstration, not a
// parser or REPL (surface syntax parsing is out of scope, per spec.md
// §1 Non-goals).
package main

import (
	"fmt"

	"github.com/gitrdm/exprspace/pkg/exprspace"
)

func main() {
	fmt.Println("=== exprspace demo ===")
	fmt.Println()

	basicRewriting()
	typedApplication()
	arithmetic()
}

// basicRewriting reproduces the frog/croaks logic chain: asserting facts
// and rules, then interpreting a query down to T.
func basicRewriting() {
	fmt.Println("1. Basic rewriting:")

	session := exprspace.NewSession()
	space := session.Space()

	fritz := exprspace.Sym("Fritz")
	green := exprspace.Sym("green")
	frog := exprspace.Sym("frog")
	croaks := exprspace.Sym("croaks")
	eatFlies := exprspace.Sym("eat_flies")
	and := exprspace.Sym("And")
	t := exprspace.Sym("T")

	x := exprspace.Var("x")

	space.Add(exprspace.Expr(exprspace.EqualSymbol,
		exprspace.Expr(green, x),
		exprspace.Expr(frog, x)))
	space.Add(exprspace.Expr(exprspace.EqualSymbol,
		exprspace.Expr(frog, x),
		exprspace.Expr(and, exprspace.Expr(croaks, x), exprspace.Expr(eatFlies, x))))
	space.Add(exprspace.Expr(exprspace.EqualSymbol, exprspace.Expr(croaks, fritz), t))
	space.Add(exprspace.Expr(exprspace.EqualSymbol, exprspace.Expr(eatFlies, fritz), t))
	space.Add(exprspace.Expr(exprspace.EqualSymbol, exprspace.Expr(and, t, t), t))
	space.Add(exprspace.Expr(green, fritz))

	results, _ := session.Run([]exprspace.Atom{
		exprspace.Expr(exprspace.Sym("!"), exprspace.Expr(frog, fritz)),
	})
	fmt.Printf("   (frog Fritz) => %v\n", results)
	fmt.Println()
}

// typedApplication demonstrates asserting and checking a function type.
func typedApplication() {
	fmt.Println("2. Typed application:")

	session := exprspace.NewSession()
	space := session.Space()

	number := exprspace.Sym("Number")
	double := exprspace.Sym("double")

	space.Add(exprspace.Expr(exprspace.HasTypeSymbol, double,
		exprspace.Expr(exprspace.ArrowSymbol, number, number)))
	space.Add(exprspace.Expr(exprspace.HasTypeSymbol, exprspace.Sym("2"), number))

	call := exprspace.Expr(double, exprspace.Sym("2"))
	ok := exprspace.ValidateAtom(space, call)
	fmt.Printf("   (double 2) validates against its declared type: %v\n", ok)
	fmt.Println()
}

// arithmetic shows grounded operator execution.
func arithmetic() {
	fmt.Println("3. Grounded arithmetic:")

	session := exprspace.NewSession()
	expr := exprspace.Expr(exprspace.PlusOp(), exprspace.Int(2), exprspace.Int(3))

	results, _ := session.Run([]exprspace.Atom{
		exprspace.Expr(exprspace.Sym("!"), expr),
	})
	fmt.Printf("   (+ 2 3) => %v\n", results)
}
