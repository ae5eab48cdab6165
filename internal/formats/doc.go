// Package formats provides the stock formatter set and component renderers.
//
//	Key        Class           Element
//	paragraph  Structural      <p>
//	heading    Structural      <h1>..<h6>, data "level"
//	align      BlockStyle      text-align style on the structural element
//	link       InlineWrapper   <a href>, data "href"
//	bold       InlineWrapper   <strong>, matches <b>
//	italic     InlineWrapper   <em>, matches <i>
//	code       InlineWrapper   <code>
//	color      InlineProperty  color style on the innermost wrapper, or <span>
//
// Every formatter renders and matches its own markup, so a rendered host tree
// parses back into the same ranges.
package formats
