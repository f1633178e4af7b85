package types

// NotificationTab is the category selected on the notifications page
type NotificationTab string

const (
	NotificationTabAll       NotificationTab = "all"
	NotificationTabReplies   NotificationTab = "replies"
	NotificationTabReactions NotificationTab = "reactions"
)
