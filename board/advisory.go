package board

const (
	AdvisoryPublishing    = "You are publishing this post, double check that everything you entered is correct"
	AdvisoryNonePublished = "No post published yet"
)

// Advisory derives the status message shown beneath the published checkbox.
func Advisory(published bool) string {
	if published {
		return AdvisoryPublishing
	}
	return AdvisoryNonePublished
}
