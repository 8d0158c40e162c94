package points

// Quality tier thresholds and rewards.
const (
	TierLowMax    = 33
	TierMediumMax = 66

	RewardLow    = 1
	RewardMedium = 2
	RewardHigh   = 3
)

// Like reward amounts.
const (
	PostLikeReward    = 2 // credited to the post author
	CommentLikeReward = 1 // credited to the comment author
	LikeGivenReward   = 1 // credited to the liking account
)

// Daily activity reward amounts.
const (
	DailyLoginReward      = 1
	DailyMembershipReward = 1
)

// RewardForComment applies the reward policy to an evaluator verdict.
//
// A flagged comment earns nothing; no floor applies. A zero score without a
// flag means the judge produced no usable signal, so a length-based floor
// score is substituted. A positive score is raised to a length-based minimum
// so substantial comments are never under-rewarded by a harsh verdict.
func RewardForComment(score int, flagged bool, wordCount int) (finalScore, reward int) {
	if flagged {
		return 0, 0
	}

	switch {
	case score == 0:
		finalScore = floorScore(wordCount)
	default:
		finalScore = score
		if min := lengthMinimum(wordCount); finalScore < min {
			finalScore = min
		}
	}

	if finalScore == 0 {
		return 0, 0
	}
	return finalScore, tierReward(finalScore)
}

// floorScore is the score assigned when the judge produced no usable signal.
func floorScore(wordCount int) int {
	switch {
	case wordCount > 200:
		return 80
	case wordCount > 100:
		return 60
	case wordCount > 50:
		return 40
	case wordCount > 20:
		return 20
	default:
		return 10
	}
}

// lengthMinimum is the minimum final score a comment of the given length may
// receive when the judge did return a usable score.
func lengthMinimum(wordCount int) int {
	switch {
	case wordCount > 200:
		return 60
	case wordCount > 100:
		return 40
	case wordCount > 50:
		return 20
	default:
		return 0
	}
}

// RewardForScore returns the award a stored verdict earned. Deleting a
// comment reverses exactly this amount.
func RewardForScore(finalScore int, flagged bool) int {
	if flagged || finalScore == 0 {
		return 0
	}
	return tierReward(finalScore)
}

// tierReward maps a positive final score to its quality-tier point award.
func tierReward(score int) int {
	switch {
	case score <= TierLowMax:
		return RewardLow
	case score <= TierMediumMax:
		return RewardMedium
	default:
		return RewardHigh
	}
}

// TargetKind identifies what a like points at.
type TargetKind int

const (
	TargetPost TargetKind = iota
	TargetComment
)

// LikeDeltas returns the point deltas for a like action: the delta for the
// liking account and the delta for the target's author. Unliking is the exact
// inverse of liking. Guest likes credit only the author; there is no liker
// account to credit or debit.
func LikeDeltas(target TargetKind, unlike, guest bool) (liker, author int) {
	switch target {
	case TargetComment:
		author = CommentLikeReward
	default:
		author = PostLikeReward
	}
	if !guest {
		liker = LikeGivenReward
	}
	if unlike {
		return -liker, -author
	}
	return liker, author
}

// DailyReward returns the login and membership bonuses for a first login of
// the day. The membership bonus is only granted when the account also logged
// in on the immediately preceding day.
func DailyReward(loggedInYesterday bool) (login, membership int) {
	login = DailyLoginReward
	if loggedInYesterday {
		membership = DailyMembershipReward
	}
	return login, membership
}
