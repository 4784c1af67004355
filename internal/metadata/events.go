package metadata

import "strings"

// events maps on* attribute names to the dom event type constant they bind.
var events = map[string]string{
	"onclick":              "Click",
	"ondblclick":           "DoubleClick",
	"oncontextmenu":        "ContextMenu",
	"onmousedown":          "MouseDown",
	"onmouseup":            "MouseUp",
	"onmousemove":          "MouseMove",
	"onmouseenter":         "MouseEnter",
	"onmouseleave":         "MouseLeave",
	"onpointerover":        "PointerOver",
	"onpointerenter":       "PointerEnter",
	"onpointerdown":        "PointerDown",
	"onpointermove":        "PointerMove",
	"onpointerup":          "PointerUp",
	"onpointercancel":      "PointerCancel",
	"onpointerout":         "PointerOut",
	"onpointerleave":       "PointerLeave",
	"ongotpointercapture":  "GotPointerCapture",
	"onlostpointercapture": "LostPointerCapture",
	"onkeydown":            "KeyDown",
	"onkeyup":              "KeyUp",
	"onfocus":              "Focus",
	"onblur":               "Blur",
	"onfocusin":            "FocusIn",
	"onfocusout":           "FocusOut",
	"ondragstart":          "DragStart",
	"ondrag":               "Drag",
	"ondragend":            "DragEnd",
	"ondragover":           "DragOver",
	"ondragenter":          "DragEnter",
	"ondragleave":          "DragLeave",
	"ondrop":               "Drop",
	"oninput":              "Input",
	"onbeforeinput":        "BeforeInput",
	"onchange":             "Change",
	"onsubmit":             "Submit",
	"onanimationstart":     "AnimationStart",
	"onanimationiteration": "AnimationIteration",
	"onanimationcancel":    "AnimationCancel",
	"onanimationend":       "AnimationEnd",
	"onwheel":              "Wheel",
	"onload":               "Load",
	"onerror":              "Error",
	"onscroll":             "Scroll",
	"onscrollend":          "ScrollEnd",
	"onresize":             "Resize",
	"onselectionchange":    "SelectionChange",
	"ontouchstart":         "TouchStart",
	"ontouchmove":          "TouchMove",
	"ontouchend":           "TouchEnd",
	"ontouchcancel":        "TouchCancel",
}

// EventType returns the dom constant name for an on* attribute, e.g.
// "onclick" -> "Click". known is false for names outside the table.
func EventType(attr string) (ident string, known bool) {
	ident, known = events[attr]
	return ident, known
}

// EventName returns the DOM event name of an on* attribute: "onclick" -> "click".
func EventName(attr string) string {
	return strings.TrimPrefix(attr, "on")
}

// IsEventName reports whether attr looks like a native event handler name:
// "on" followed by a lowercase letter.
func IsEventName(attr string) bool {
	return len(attr) > 2 && strings.HasPrefix(attr, "on") && attr[2] >= 'a' && attr[2] <= 'z'
}
