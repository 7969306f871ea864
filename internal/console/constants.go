package console

// Icons (emojis/symbols)
const (
	IconApp      = "🎬"
	IconFolder   = "📁"
	IconSaveTo   = "📂"
	IconURL      = "🎥"
	IconTitle    = "📹"
	IconUploader = "👤"
	IconDuration = "⏱️ "
	IconProgress = "📥"
	IconConvert  = "📝"
	IconMedia    = "🔎"
	IconSuccess  = "✅"
	IconDone     = "🎉"
	IconError    = "❌"
	IconFailed   = "💥"
	IconTip      = "💡"
)

// Text fragments
const (
	SeparatorWidth     = 50
	BannerRuleWidth    = 40
	ProgressLineFormat = "\r%s Downloading... %s at %s ETA: %s"
)
