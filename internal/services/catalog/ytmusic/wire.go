package ytmusic

// Wire structs mirror the slices of the browse/search responses this
// client actually reads. The payloads are much larger; everything
// unlisted is ignored by the decoder.

type textRuns struct {
	Runs []textRun `json:"runs"`
}

type textRun struct {
	Text               string `json:"text"`
	NavigationEndpoint struct {
		WatchEndpoint struct {
			VideoID string `json:"videoId"`
		} `json:"watchEndpoint"`
		BrowseEndpoint struct {
			BrowseID string `json:"browseId"`
		} `json:"browseEndpoint"`
	} `json:"navigationEndpoint"`
}

type thumbnailBlock struct {
	MusicThumbnailRenderer struct {
		Thumbnail struct {
			Thumbnails []struct {
				URL    string `json:"url"`
				Width  int    `json:"width"`
				Height int    `json:"height"`
			} `json:"thumbnails"`
		} `json:"thumbnail"`
	} `json:"musicThumbnailRenderer"`
}

type listItemRenderer struct {
	Thumbnail   thumbnailBlock `json:"thumbnail"`
	FlexColumns []struct {
		MusicResponsiveListItemFlexColumnRenderer struct {
			Text textRuns `json:"text"`
		} `json:"musicResponsiveListItemFlexColumnRenderer"`
	} `json:"flexColumns"`
	NavigationEndpoint struct {
		BrowseEndpoint struct {
			BrowseID string `json:"browseId"`
		} `json:"browseEndpoint"`
	} `json:"navigationEndpoint"`
}

type musicShelf struct {
	Contents []struct {
		MusicResponsiveListItemRenderer listItemRenderer `json:"musicResponsiveListItemRenderer"`
	} `json:"contents"`
}

type sectionList struct {
	Contents []struct {
		MusicShelfRenderer musicShelf `json:"musicShelfRenderer"`
	} `json:"contents"`
}

type searchResponse struct {
	Contents struct {
		TabbedSearchResultsRenderer struct {
			Tabs []struct {
				TabRenderer struct {
					Content struct {
						SectionListRenderer sectionList `json:"sectionListRenderer"`
					} `json:"content"`
				} `json:"tabRenderer"`
			} `json:"tabs"`
		} `json:"tabbedSearchResultsRenderer"`
	} `json:"contents"`
}

type browseResponse struct {
	Header struct {
		MusicImmersiveHeaderRenderer struct {
			Title              textRuns       `json:"title"`
			Description        textRuns       `json:"description"`
			Thumbnail          thumbnailBlock `json:"thumbnail"`
			SubscriptionButton struct {
				SubscribeButtonRenderer struct {
					SubscriberCountText textRuns `json:"subscriberCountText"`
				} `json:"subscribeButtonRenderer"`
			} `json:"subscriptionButton"`
		} `json:"musicImmersiveHeaderRenderer"`
	} `json:"header"`
	Contents struct {
		SingleColumnBrowseResultsRenderer struct {
			Tabs []struct {
				TabRenderer struct {
					Content struct {
						SectionListRenderer sectionList `json:"sectionListRenderer"`
					} `json:"content"`
				} `json:"tabRenderer"`
			} `json:"tabs"`
		} `json:"singleColumnBrowseResultsRenderer"`
	} `json:"contents"`
}
