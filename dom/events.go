package dom

// EventType names a DOM event, e.g. "click".
type EventType string

// Event types recognised by the markup compiler. Handlers bound through an
// on* attribute whose name is not listed here use EventType("<name>").
const (
	Click              EventType = "click"
	DoubleClick        EventType = "dblclick"
	ContextMenu        EventType = "contextmenu"
	MouseDown          EventType = "mousedown"
	MouseUp            EventType = "mouseup"
	MouseMove          EventType = "mousemove"
	MouseEnter         EventType = "mouseenter"
	MouseLeave         EventType = "mouseleave"
	PointerOver        EventType = "pointerover"
	PointerEnter       EventType = "pointerenter"
	PointerDown        EventType = "pointerdown"
	PointerMove        EventType = "pointermove"
	PointerUp          EventType = "pointerup"
	PointerCancel      EventType = "pointercancel"
	PointerOut         EventType = "pointerout"
	PointerLeave       EventType = "pointerleave"
	GotPointerCapture  EventType = "gotpointercapture"
	LostPointerCapture EventType = "lostpointercapture"
	KeyDown            EventType = "keydown"
	KeyUp              EventType = "keyup"
	Focus              EventType = "focus"
	Blur               EventType = "blur"
	FocusIn            EventType = "focusin"
	FocusOut           EventType = "focusout"
	DragStart          EventType = "dragstart"
	Drag               EventType = "drag"
	DragEnd            EventType = "dragend"
	DragOver           EventType = "dragover"
	DragEnter          EventType = "dragenter"
	DragLeave          EventType = "dragleave"
	Drop               EventType = "drop"
	Input              EventType = "input"
	BeforeInput        EventType = "beforeinput"
	Change             EventType = "change"
	Submit             EventType = "submit"
	AnimationStart     EventType = "animationstart"
	AnimationIteration EventType = "animationiteration"
	AnimationCancel    EventType = "animationcancel"
	AnimationEnd       EventType = "animationend"
	Wheel              EventType = "wheel"
	Load               EventType = "load"
	Error              EventType = "error"
	Scroll             EventType = "scroll"
	ScrollEnd          EventType = "scrollend"
	Resize             EventType = "resize"
	SelectionChange    EventType = "selectionchange"
	TouchStart         EventType = "touchstart"
	TouchMove          EventType = "touchmove"
	TouchEnd           EventType = "touchend"
	TouchCancel        EventType = "touchcancel"
)
