package qcolor

import (
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGraph(t *testing.T) {
	Convey("Given the cube edge list", t, func() {
		g, err := NewGraph(8, cubeEdges)
		So(err, ShouldBeNil)
		So(g.NumVertices(), ShouldEqual, 8)
		So(g.NumEdges(), ShouldEqual, 12)

		Convey("Edges returns a copy", func() {
			edges := g.Edges()
			edges[0] = Edge{5, 6}
			So(g.Edges()[0], ShouldResemble, Edge{0, 1})
		})

		Convey("String renders the parseable form", func() {
			So(g.String(), ShouldStartWith, "0-1, 1-2, 2-3")
		})
	})

	Convey("Given inconsistent vertex counts", t, func() {
		_, err := NewGraph(7, cubeEdges)
		So(errors.Is(err, ErrInconsistentVertexCount), ShouldBeTrue)

		_, err = NewGraph(9, cubeEdges)
		So(errors.Is(err, ErrInconsistentVertexCount), ShouldBeTrue)

		_, err = NewGraph(0, nil)
		So(errors.Is(err, ErrInconsistentVertexCount), ShouldBeTrue)
	})

	Convey("Given malformed edges", t, func() {
		_, err := NewGraph(2, []Edge{{1, 1}})
		So(errors.Is(err, ErrInvalidGraph), ShouldBeTrue)

		_, err = NewGraph(2, []Edge{{0, 1}, {1, 0}})
		So(errors.Is(err, ErrInvalidGraph), ShouldBeTrue)

		_, err = NewGraph(2, []Edge{{-1, 1}})
		So(errors.Is(err, ErrInvalidGraph), ShouldBeTrue)
	})

	Convey("Given an edgeless graph", t, func() {
		g, err := NewGraph(4, nil)
		So(err, ShouldBeNil)
		So(g.NumEdges(), ShouldEqual, 0)
	})
}

func TestParseGraph(t *testing.T) {
	Convey("Given the cube written as text", t, func() {
		text := "0-1, 1-2, 2-3, 3-0, 0-4, 1-5, 2-6, 3-7, 4-5, 5-6, 6-7, 7-4"

		g, err := ParseGraph(text)
		So(err, ShouldBeNil)
		So(g.NumVertices(), ShouldEqual, 8)
		So(g.Edges(), ShouldResemble, cubeEdges)

		Convey("It round-trips through String", func() {
			again, err := ParseGraph(g.String())
			So(err, ShouldBeNil)
			So(again.Edges(), ShouldResemble, cubeEdges)
		})
	})

	Convey("Given malformed text", t, func() {
		_, err := ParseGraph("0-1, 1")
		So(errors.Is(err, ErrInvalidGraph), ShouldBeTrue)
	})

	Convey("Given an empty edge list", t, func() {
		_, err := ParseGraph("")
		So(errors.Is(err, ErrInconsistentVertexCount), ShouldBeTrue)

		g, err := ParseGraphWithVertices("  ", 3)
		So(err, ShouldBeNil)
		So(g.NumVertices(), ShouldEqual, 3)
	})
}
