package format

// Contact is one contact record as returned by the contact formatters.
type Contact struct {
	ID        string `json:"id"`
	GUID      string `json:"guid"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Created   string `json:"created"`
	Language  string `json:"language"`
	Confirmed bool   `json:"confirmed"`
	ListCount int    `json:"listCount"`

	Meta       ContactMeta        `json:"meta"`
	Engagement *ContactEngagement `json:"engagement"`
	Metrics    *ContactMetrics    `json:"metrics"`

	Fields       map[string]any     `json:"fields"`
	ContactLists []ContactListEntry `json:"contactLists"`
}

// FullName joins the name and surname, skipping empty parts. A contact
// without either is named by its email address.
func (c Contact) FullName() string {
	switch {
	case c.Name == "" && c.Surname == "":
		return c.Email
	case c.Name == "":
		return c.Surname
	case c.Surname == "":
		return c.Name
	default:
		return c.Name + " " + c.Surname
	}
}

// ContactMeta holds bookkeeping attributes of a contact.
type ContactMeta struct {
	UID       *string `json:"uid"`
	Version   *int    `json:"version"`
	CreatedAt *string `json:"createdAt"`
	UpdatedAt *string `json:"updatedAt"`
	Origin    *string `json:"origin"`
}

// ContactEngagement is the engagement score block of a contact.
type ContactEngagement struct {
	Level              *string `json:"level"`
	Score              *int    `json:"score"`
	CalculatedAt       *string `json:"calculatedAt"`
	DaysSinceLastEmail *int    `json:"daysSinceLastEmail"`
}

// ContactMetrics groups per-channel delivery metrics.
type ContactMetrics struct {
	Email EmailMetrics `json:"email"`
}

// EmailMetrics are the email delivery metrics of a contact.
type EmailMetrics struct {
	LastSentAt       *string `json:"lastSentAt"`
	LastOpenedAt     *string `json:"lastOpenedAt"`
	LastClickedAt    *string `json:"lastClickedAt"`
	Hardbounced      *bool   `json:"hardbounced"`
	SoftbouncesInRow *int    `json:"softbouncesInRow"`
}

// ContactListEntry is a contact's membership in one list.
type ContactListEntry struct {
	ListID  int     `json:"listId"`
	Status  string  `json:"status"`
	Added   *string `json:"added"`
	Updated *string `json:"updated"`
}

// List is one contact list.
type List struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Created        string   `json:"created"`
	ActiveContacts int      `json:"activeContacts"`
	SenderName     string   `json:"senderName"`
	SenderEmail    string   `json:"senderEmail"`
	ReplyTo        string   `json:"replyTo"`
	Meta           ListMeta `json:"meta"`
}

// ListMeta holds the less frequently used list attributes.
type ListMeta struct {
	GUID               *string        `json:"guid"`
	Version            *int           `json:"version"`
	PublicName         *string        `json:"publicName"`
	Notes              *string        `json:"notes"`
	AlertIn            *int           `json:"alertIn"`
	AlertOut           *int           `json:"alertOut"`
	Category           *string        `json:"category"`
	Signature          *string        `json:"signature"`
	SegmentID          *string        `json:"segmentId"`
	Hidden             *bool          `json:"hidden"`
	TotalContacts      int            `json:"totalContacts"`
	Protected          *bool          `json:"protected"`
	NotificationEmails []string       `json:"notificationEmails"`
	Data               map[string]any `json:"data,omitempty"`
}
