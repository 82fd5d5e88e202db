package domain

// ActionKind is the discriminant of an ActionRecord
type ActionKind string

const (
	ActionGreeting           ActionKind = "greeting"
	ActionClearChat          ActionKind = "clear_chat"
	ActionShowCart           ActionKind = "show_cart"
	ActionShowMenu           ActionKind = "show_menu"
	ActionRemoveAll          ActionKind = "remove_all"
	ActionUpdate             ActionKind = "update"
	ActionPlaceOrder         ActionKind = "place_order"
	ActionMultiCategoryBulk  ActionKind = "multi_category_bulk"
	ActionBulkMenu           ActionKind = "bulk_menu"
	ActionAddMultiple        ActionKind = "add_multiple"
	ActionAddMultiplePartial ActionKind = "add_multiple_partial"
	ActionAdd                ActionKind = "add"
	ActionItemNotFound       ActionKind = "item_not_found"
	ActionNone               ActionKind = "none"
)

// MessageType tells the UI which component renders the reply
type MessageType string

const (
	MessageText      MessageType = "text"
	MessageCart      MessageType = "cart"
	MessageMenu      MessageType = "menu"
	MessageReceipt   MessageType = "receipt"
	MessageBulkMenu  MessageType = "bulk-menu"
	MessageMultiBulk MessageType = "multi-bulk"
)

// Operation is the direction of a quantity update
type Operation string

const (
	OperationIncrease Operation = "increase"
	OperationDecrease Operation = "decrease"
)

// Suggested UI pacing, in milliseconds. Advisory only.
const (
	DelayClearChat = 500
	DelayGreeting  = 800
	DelayDefault   = 1000
	DelayBulk      = 1500
)

// Header carries the fields every action record has
type Header struct {
	Action        ActionKind  `json:"action"`
	MessageType   MessageType `json:"message_type"`
	ResponseDelay int         `json:"response_delay,omitempty"`
}

// Kind returns the discriminant
func (h Header) Kind() ActionKind { return h.Action }

// Meta returns the shared header
func (h Header) Meta() Header { return h }

// ActionRecord is the engine's only output. The set of implementations is closed:
// one struct per ActionKind, all defined in this file.
type ActionRecord interface {
	Kind() ActionKind
	Meta() Header
	isActionRecord()
}

// ResolvedItem is an extracted item joined against its catalog entry
type ResolvedItem struct {
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	ID         string  `json:"id"`
	Commentary string  `json:"commentary,omitempty"`
}

// CategoryQuantity is one (category, quantity) pair of a bulk order
type CategoryQuantity struct {
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

type GreetingAction struct {
	Header
	GreetingName   string         `json:"greeting_name,omitempty"`
	EmotionalState EmotionalState `json:"emotional_state"`
	ResponseText   string         `json:"response_text"`
}

type ClearChatAction struct {
	Header
}

type ShowCartAction struct {
	Header
}

type ShowMenuAction struct {
	Header
}

type RemoveAllAction struct {
	Header
	TargetItem string `json:"target_item"`
}

type UpdateAction struct {
	Header
	Operation  Operation `json:"operation"`
	TargetItem string    `json:"target_item"`
	Quantity   int       `json:"quantity"`
}

type PlaceOrderAction struct {
	Header
	OrderID    string  `json:"order_id"`
	OrderTotal float64 `json:"order_total,omitempty"`
}

type MultiCategoryBulkAction struct {
	Header
	MultiCategories      []CategoryQuantity `json:"multi_categories"`
	CurrentCategoryIndex int                `json:"current_category_index"`
}

type BulkMenuAction struct {
	Header
	Category     string `json:"category"`
	BulkQuantity int    `json:"bulk_quantity"`
}

type AddMultipleAction struct {
	Header
	Items []ResolvedItem `json:"items"`
}

type AddMultiplePartialAction struct {
	Header
	Items         []ResolvedItem `json:"items"`
	NotFoundItems []string       `json:"not_found_items"`
}

type AddAction struct {
	Header
	Items            []ResolvedItem `json:"items"`
	EmotionalContext EmotionalState `json:"emotional_context"`
}

type ItemNotFoundAction struct {
	Header
	NotFoundItems []string `json:"not_found_items"`
}

type NoneAction struct {
	Header
}

func (*GreetingAction) isActionRecord()           {}
func (*ClearChatAction) isActionRecord()          {}
func (*ShowCartAction) isActionRecord()           {}
func (*ShowMenuAction) isActionRecord()           {}
func (*RemoveAllAction) isActionRecord()          {}
func (*UpdateAction) isActionRecord()             {}
func (*PlaceOrderAction) isActionRecord()         {}
func (*MultiCategoryBulkAction) isActionRecord()  {}
func (*BulkMenuAction) isActionRecord()           {}
func (*AddMultipleAction) isActionRecord()        {}
func (*AddMultiplePartialAction) isActionRecord() {}
func (*AddAction) isActionRecord()                {}
func (*ItemNotFoundAction) isActionRecord()       {}
func (*NoneAction) isActionRecord()               {}

func header(kind ActionKind, msg MessageType, delay int) Header {
	return Header{Action: kind, MessageType: msg, ResponseDelay: delay}
}

// NewGreeting builds a greeting record
func NewGreeting(name string, state EmotionalState, text string) *GreetingAction {
	return &GreetingAction{
		Header:         header(ActionGreeting, MessageText, DelayGreeting),
		GreetingName:   name,
		EmotionalState: state,
		ResponseText:   text,
	}
}

func NewClearChat() *ClearChatAction {
	return &ClearChatAction{Header: header(ActionClearChat, MessageText, DelayClearChat)}
}

func NewShowCart() *ShowCartAction {
	return &ShowCartAction{Header: header(ActionShowCart, MessageCart, DelayDefault)}
}

func NewShowMenu() *ShowMenuAction {
	return &ShowMenuAction{Header: header(ActionShowMenu, MessageMenu, DelayDefault)}
}

func NewRemoveAll(target string) *RemoveAllAction {
	return &RemoveAllAction{Header: header(ActionRemoveAll, MessageCart, DelayDefault), TargetItem: target}
}

func NewUpdate(op Operation, target string, quantity int) *UpdateAction {
	return &UpdateAction{
		Header:     header(ActionUpdate, MessageCart, DelayDefault),
		Operation:  op,
		TargetItem: target,
		Quantity:   quantity,
	}
}

func NewPlaceOrder(orderID string, total float64) *PlaceOrderAction {
	return &PlaceOrderAction{
		Header:     header(ActionPlaceOrder, MessageReceipt, DelayBulk),
		OrderID:    orderID,
		OrderTotal: total,
	}
}

func NewMultiCategoryBulk(pairs []CategoryQuantity) *MultiCategoryBulkAction {
	return &MultiCategoryBulkAction{
		Header:          header(ActionMultiCategoryBulk, MessageMultiBulk, DelayBulk),
		MultiCategories: pairs,
	}
}

func NewBulkMenu(category string, quantity int) *BulkMenuAction {
	return &BulkMenuAction{
		Header:       header(ActionBulkMenu, MessageBulkMenu, DelayBulk),
		Category:     category,
		BulkQuantity: quantity,
	}
}

func NewAddMultiple(items []ResolvedItem) *AddMultipleAction {
	return &AddMultipleAction{Header: header(ActionAddMultiple, MessageCart, DelayDefault), Items: items}
}

func NewAddMultiplePartial(items []ResolvedItem, notFound []string) *AddMultiplePartialAction {
	return &AddMultiplePartialAction{
		Header:        header(ActionAddMultiplePartial, MessageCart, DelayDefault),
		Items:         items,
		NotFoundItems: notFound,
	}
}

func NewAdd(items []ResolvedItem, emotion EmotionalState) *AddAction {
	return &AddAction{
		Header:           header(ActionAdd, MessageCart, DelayDefault),
		Items:            items,
		EmotionalContext: emotion,
	}
}

func NewItemNotFound(notFound []string) *ItemNotFoundAction {
	return &ItemNotFoundAction{Header: header(ActionItemNotFound, MessageText, DelayDefault), NotFoundItems: notFound}
}

// NewNone is the neutral record: no response_delay
func NewNone() *NoneAction {
	return &NoneAction{Header: Header{Action: ActionNone, MessageType: MessageText}}
}
