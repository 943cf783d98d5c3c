package propstream

// UIEventType identifies the kind of thread event sent downstream.
type UIEventType string

const (
	// UIEventText is a completed assistant text message.
	UIEventText UIEventType = "text_message"

	// UIEventWidget is a completed renderable widget.
	UIEventWidget UIEventType = "widget"

	// UIEventThreadMetadata updates thread-level metadata such as the title.
	UIEventThreadMetadata UIEventType = "thread_metadata"
)

// UIEvent is the output unit of one conversational turn. Ordering within a
// turn is significant; events from different turns are independent.
type UIEvent struct {
	Type UIEventType `json:"type"`

	// Message is set for UIEventText events.
	Message *TextMessage `json:"message,omitempty"`

	// Widget is set for UIEventWidget events.
	Widget *Widget `json:"widget,omitempty"`

	// Metadata is set for UIEventThreadMetadata events.
	Metadata *ThreadMetadataUpdate `json:"metadata,omitempty"`
}

// TextMessage is a completed assistant message.
type TextMessage struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ThreadMetadataUpdate carries a changed thread title.
type ThreadMetadataUpdate struct {
	Title string `json:"title"`
}

// NewTextEvent wraps text in a UIEvent with a fresh message id.
func NewTextEvent(text string) UIEvent {
	return UIEvent{
		Type:    UIEventText,
		Message: &TextMessage{ID: GenerateMessageID(), Text: text},
	}
}

// NewWidgetEvent wraps a widget in a UIEvent.
func NewWidgetEvent(w Widget) UIEvent {
	if w.ID == "" {
		w.ID = GenerateWidgetID()
	}
	return UIEvent{Type: UIEventWidget, Widget: &w}
}

// NewTitleEvent wraps a thread title update in a UIEvent.
func NewTitleEvent(title string) UIEvent {
	return UIEvent{
		Type:     UIEventThreadMetadata,
		Metadata: &ThreadMetadataUpdate{Title: title},
	}
}
