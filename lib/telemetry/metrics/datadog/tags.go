package datadog

import (
	"fmt"
	"sort"
)

// getTags accepts the decoded JSON value of the "tags" setting.
func getTags(tags any) []string {
	switch castedTags := tags.(type) {
	case []string:
		return castedTags
	case []any:
		retTags := make([]string, 0, len(castedTags))
		for _, tag := range castedTags {
			retTags = append(retTags, fmt.Sprint(tag))
		}
		return retTags
	default:
		return []string{}
	}
}

func toDatadogTags(tags map[string]string) []string {
	retTags := make([]string, 0, len(tags))
	for key, val := range tags {
		retTags = append(retTags, fmt.Sprintf("%s:%s", key, val))
	}

	sort.Strings(retTags)
	return retTags
}
