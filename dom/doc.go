// Package dom describes the DOM-construction surface that code generated by
// rsx generate calls into.
//
// Generated components build their trees through [Element], [Text] and
// [TextReactive], and bind events with the [EventType] constants declared
// here. The actual browser binding is supplied by a [Backend] registered with
// [Use]; this package only fixes the contract both sides agree on.
//
// Example of generated code:
//
//	dom.Element("button").
//		Attribute("class", "primary").
//		Event(dom.Click, onClick).
//		Children(
//			dom.Text("Clicked "),
//			dom.TextReactive(dom.Format(count.Signal())),
//		)
package dom
