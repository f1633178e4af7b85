package nostr

// Event kinds this client reads or writes
const (
	KindProfile       = 0
	KindText          = 1
	KindRepost        = 6
	KindReaction      = 7
	KindGenericRepost = 16
	KindPicture       = 20
	KindShortVideo    = 22
	KindFollow        = 967 // follow notification
	KindGenericReply  = 1111
	KindBookmarkSet   = 3006
	KindNutzap        = 9321
	KindZap           = 9735
	KindMuteList      = 10000
)
