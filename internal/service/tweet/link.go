package tweet

import "regexp"

// statusLinkRe matches the /<author>/status/<id> part of a tweet URL. The
// host is deliberately not anchored: users paste twitter.com, x.com and
// mirror links alike.
var statusLinkRe = regexp.MustCompile(`/(\w+)/status/(\d+)`)

// ParseStatusLink extracts the author handle and tweet id from the first
// status link embedded in text.
func ParseStatusLink(text string) (username, tweetID string, ok bool) {
	m := statusLinkRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// CanonicalURL reconstructs the clean x.com form of a status link.
func CanonicalURL(username, tweetID string) string {
	return "https://x.com/" + username + "/status/" + tweetID
}
