package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent identical work. A centralized singleflight.Group ensures a
// single job runs for a given key while other callers wait for its result.

import "golang.org/x/sync/singleflight"

// QRGroup deduplicates join-code QR renders keyed by the join code.
var QRGroup singleflight.Group

// LeaderboardGroup deduplicates leaderboard queries under request bursts.
var LeaderboardGroup singleflight.Group
