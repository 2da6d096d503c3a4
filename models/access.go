package models

// ContentView is the payload shape returned to a viewer for one post.
// When the viewer is not entitled, media is stripped but metadata stays
// visible (caption, price, creator info).
type ContentView struct {
	ContentPost
	CreatorName     string   `json:"creatorName"`
	CreatorUsername string   `json:"creatorUsername"`
	CreatorAvatar   string   `json:"creatorAvatar"`
	IsLiked         bool     `json:"isLiked"`
	IsPurchased     bool     `json:"isPurchased"`
	IsLocked        bool     `json:"isLocked"`
	Media           []string `json:"mediaUrls"`
}

// MessageView is the payload shape returned to a viewer for one message
type MessageView struct {
	Message
	SenderName   string   `json:"senderName"`
	SenderAvatar string   `json:"senderAvatar"`
	IsPurchased  bool     `json:"isPurchased"`
	IsLocked     bool     `json:"isLocked"`
	Media        []string `json:"mediaUrls"`
}

// ContentAccessGranted decides whether a viewer may see the full payload of
// a post: the owning creator always may, free posts always may, paid posts
// only with a purchase record.
func ContentAccessGranted(viewerID string, post ContentPost, purchased bool) bool {
	if post.CreatorID == viewerID {
		return true
	}
	if !post.IsPaid {
		return true
	}
	return purchased
}

// MessageAccessGranted decides whether a viewer may see the full payload of
// a message. The sender always may; the recipient must have purchased a paid
// message unless it was unlocked (free messages are unlocked at creation,
// paid ones flip on purchase).
func MessageAccessGranted(viewerID string, msg Message, purchased bool) bool {
	if msg.SenderID == viewerID {
		return true
	}
	if !msg.IsPaid {
		return true
	}
	return msg.IsUnlocked || purchased
}

// ResolveContentAccess shapes the view model for one post, stripping media
// when access is denied.
func ResolveContentAccess(viewerID string, post ContentPost, purchased bool, liked bool) ContentView {
	granted := ContentAccessGranted(viewerID, post, purchased)

	view := ContentView{
		ContentPost: post,
		IsLiked:     liked,
		IsPurchased: purchased,
		IsLocked:    !granted,
		Media:       []string{},
	}
	if granted {
		view.Media = []string(post.MediaURLs)
	}
	view.MediaURLs = nil
	return view
}

// ResolveMessageAccess shapes the view model for one message, stripping media
// when access is denied.
func ResolveMessageAccess(viewerID string, msg Message, purchased bool) MessageView {
	granted := MessageAccessGranted(viewerID, msg, purchased)

	view := MessageView{
		Message:     msg,
		IsPurchased: purchased,
		IsLocked:    !granted,
		Media:       []string{},
	}
	if granted {
		view.Media = []string(msg.MediaURLs)
	}
	view.MediaURLs = nil
	return view
}
