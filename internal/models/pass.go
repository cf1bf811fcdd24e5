package models

// Pass types carried on receipts and QR sessions.
const (
	PassCash      = "cash"
	PassFree      = "free"
	PassFix       = "fix"
	PassOneDay    = "1day"
	PassLocker    = "locker"
	PassStudyRoom = "studyroom"
)

// PassTypeDisplayName maps a pass-type tag to its display label. Unknown tags
// fall back to the raw value so the screen never shows an empty slot.
func PassTypeDisplayName(passType string) string {
	switch passType {
	case PassCash:
		return "캐시정기권"
	case PassFree:
		return "기간정기권(자유석)"
	case PassFix:
		return "기간정기권(고정석)"
	case PassOneDay, "oneday":
		return "1일 이용권"
	case PassLocker:
		return "사물함"
	case PassStudyRoom:
		return "스터디룸"
	case "":
		return "이용권"
	default:
		return passType
	}
}

// TargetRequired reports whether the pass type needs a concrete seat, locker
// or room target before a draft can be requested.
func TargetRequired(passType string) bool {
	switch passType {
	case PassFix, PassLocker, PassStudyRoom:
		return true
	default:
		return false
	}
}
