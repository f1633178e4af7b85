package nostr

// TagValue returns the value of the first tag with the given key, or "" if none.
// Keys are case sensitive: "P" (root author) and "p" (parent author) are distinct.
func TagValue(tags [][]string, key string) string {
	for _, tag := range tags {
		if len(tag) >= 2 && tag[0] == key {
			return tag[1]
		}
	}
	return ""
}

// LastTagValue returns the value of the last tag with the given key, or "" if none.
func LastTagValue(tags [][]string, key string) string {
	for i := len(tags) - 1; i >= 0; i-- {
		if len(tags[i]) >= 2 && tags[i][0] == key {
			return tags[i][1]
		}
	}
	return ""
}

// TagValues returns every value for the given tag key, in order.
func TagValues(tags [][]string, key string) []string {
	var values []string
	for _, tag := range tags {
		if len(tag) >= 2 && tag[0] == key {
			values = append(values, tag[1])
		}
	}
	return values
}

// FirstTagValue returns the first value found trying each key in order.
func FirstTagValue(tags [][]string, keys ...string) string {
	for _, key := range keys {
		if v := TagValue(tags, key); v != "" {
			return v
		}
	}
	return ""
}
