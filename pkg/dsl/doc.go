/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing Easel commands.

It allows developers to script edits using a type-safe, fluent builder pattern
instead of hand-writing payload maps. This is particularly useful for tests,
seeding documents and generating command scripts.

Example usage:

	package main

	import (
		"github.com/aretw0/easel"
		"github.com/aretw0/easel/pkg/domain"
		"github.com/aretw0/easel/pkg/dsl"
	)

	func main() {
		ed, _ := easel.New("doc", easel.WithBackground(800, 600))

		b := dsl.New()
		b.Then(dsl.Rect(10, 10, 100, 50).ID("box").Fill("#ff0000").Add())
		b.Then(dsl.Circle(300, 200, 40).ID("dot").Add())
		b.Then(dsl.Select("box", "dot"))
		b.Then(dsl.Align(domain.AlignTop).Command())

		b.Apply(ed)
	}
*/
package dsl
