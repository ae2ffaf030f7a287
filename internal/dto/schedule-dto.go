package dto

type TimelineElement struct {
	Index       int    `json:"index"`
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Side        string `json:"side"`         // left | right
	BorderWidth string `json:"border_width"` // css border-width of the content box
}
