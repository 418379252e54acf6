package frpparty

import "github.com/delaneyj/frpparty/internal"

// BehaviorPlaceholder is a behavior bound to its source later. Every
// combinator accepts it before replacement; observers registered early are
// buffered and take effect the moment ReplaceWith closes the loop. Sampling
// an unreplaced placeholder panics.
type BehaviorPlaceholder[A any] struct {
	*Behavior[A]
	p *internal.BehaviorPlaceholder
}

// PlaceholderB creates an unbound behavior placeholder.
func PlaceholderB[A any]() *BehaviorPlaceholder[A] {
	p := internal.NewBehaviorPlaceholder()
	return &BehaviorPlaceholder[A]{wrapB[A](&p.Behavior), p}
}

// ReplaceWith binds the source. Replacing twice panics.
func (p *BehaviorPlaceholder[A]) ReplaceWith(b BehaviorLike[A]) {
	p.p.ReplaceWith(b.core())
}

// StreamPlaceholder is the stream-kind placeholder.
type StreamPlaceholder[A any] struct {
	*Stream[A]
	p *internal.StreamPlaceholder
}

// PlaceholderS creates an unbound stream placeholder.
func PlaceholderS[A any]() *StreamPlaceholder[A] {
	p := internal.NewStreamPlaceholder()
	return &StreamPlaceholder[A]{wrapS[A](&p.Stream), p}
}

// ReplaceWith binds the source. Replacing twice panics.
func (p *StreamPlaceholder[A]) ReplaceWith(s StreamLike[A]) {
	p.p.ReplaceWith(s.core())
}
