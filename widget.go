package propstream

// Shape distinguishes the two output shapes of a widget. The composer
// orders whole categories (all cards before all lists); the distinction
// carries no other meaning here.
type Shape string

const (
	ShapeCard Shape = "card"
	ShapeList Shape = "list"
)

// Widget is an opaque renderable UI node emitted alongside text messages.
// The rendering layer interprets the node tree; this package only cares
// about identity and shape.
type Widget struct {
	ID    string `json:"id"`
	Shape Shape  `json:"shape"`
	Root  Node   `json:"root"`
}

// NodeType identifies the kind of UI node to render.
type NodeType string

const (
	NodeCard     NodeType = "card"
	NodeRow      NodeType = "row"
	NodeCol      NodeType = "col"
	NodeBox      NodeType = "box"
	NodeText     NodeType = "text"
	NodeTitle    NodeType = "title"
	NodeCaption  NodeType = "caption"
	NodeBadge    NodeType = "badge"
	NodeImage    NodeType = "image"
	NodeButton   NodeType = "button"
	NodeIcon     NodeType = "icon"
	NodeDivider  NodeType = "divider"
	NodeSpacer   NodeType = "spacer"
	NodeListView NodeType = "listView"
	NodeListItem NodeType = "listItem"
)

// Node is one element of a widget tree.
type Node struct {
	Type NodeType `json:"type"`

	// Text-bearing nodes
	Value    string `json:"value,omitempty"`
	Label    string `json:"label,omitempty"`
	MaxLines int    `json:"maxLines,omitempty"`

	// Image nodes
	Src    string `json:"src,omitempty"`
	Alt    string `json:"alt,omitempty"`
	Height int    `json:"height,omitempty"`
	Fit    string `json:"fit,omitempty"`

	// Icon nodes and button icons
	Icon string `json:"icon,omitempty"`

	// Styling hints, passed through to the rendering layer
	Size    string `json:"size,omitempty"`
	Weight  string `json:"weight,omitempty"`
	Color   string `json:"color,omitempty"`
	Variant string `json:"variant,omitempty"`
	Radius  string `json:"radius,omitempty"`

	// Layout hints
	Gap     int    `json:"gap,omitempty"`
	Align   string `json:"align,omitempty"`
	Justify string `json:"justify,omitempty"`
	Wrap    string `json:"wrap,omitempty"`
	Flex    int    `json:"flex,omitempty"`

	// Key identifies list items for the rendering layer.
	Key string `json:"key,omitempty"`

	// Limit caps visible list items ("show more" past this many).
	Limit int `json:"limit,omitempty"`

	Children []Node  `json:"children,omitempty"`
	OnClick  *Action `json:"onClickAction,omitempty"`
}

// Action describes a user-initiated callback attached to a node. Actions
// without a handler are dispatched to the server; "client" handlers stay
// in the rendering layer.
type Action struct {
	Type    string         `json:"type"`
	Handler string         `json:"handler,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Action types forwarded from the rendering layer into the composer.
const (
	ActionToggleFavorite  = "toggle_favorite"
	ActionHideListing     = "hide_listing"
	ActionUnhideListing   = "unhide_listing"
	ActionViewItemDetails = "view_item_details"
	ActionSaveSearch      = "save_search"
	ActionCloseDetails    = "close_details"
)

// Text creates a text node.
func Text(value string) Node {
	return Node{Type: NodeText, Value: value}
}

// Title creates a title node.
func Title(value, size string) Node {
	return Node{Type: NodeTitle, Value: value, Size: size}
}

// Caption creates a caption node.
func Caption(value string) Node {
	return Node{Type: NodeCaption, Value: value, Size: "sm", Color: "secondary"}
}

// Badge creates a badge node.
func Badge(label, color string) Node {
	return Node{Type: NodeBadge, Label: label, Color: color, Variant: "soft"}
}

// Row creates a horizontal layout node.
func Row(children ...Node) Node {
	return Node{Type: NodeRow, Children: children}
}

// Col creates a vertical layout node.
func Col(children ...Node) Node {
	return Node{Type: NodeCol, Children: children}
}

// Image creates an image node.
func Image(src, alt string, height int) Node {
	return Node{Type: NodeImage, Src: src, Alt: alt, Height: height, Fit: "cover", Radius: "lg"}
}

// Button creates a button node with an attached action.
func Button(label, icon string, action Action) Node {
	return Node{Type: NodeButton, Label: label, Icon: icon, Size: "sm", OnClick: &action}
}

// ListView creates a list container node.
func ListView(limit int, items ...Node) Node {
	return Node{Type: NodeListView, Limit: limit, Children: items}
}

// ListItem creates one entry of a list view.
func ListItem(key string, action *Action, children ...Node) Node {
	return Node{Type: NodeListItem, Key: key, OnClick: action, Children: children}
}

// Divider creates a divider node.
func Divider() Node {
	return Node{Type: NodeDivider}
}

// Spacer creates a spacer node.
func Spacer() Node {
	return Node{Type: NodeSpacer}
}
