package po

import "strings"

// Rating 表示内容分级。
type Rating string

// 分级常量定义，从全年龄到成人。
const (
	RatingER    Rating = "ER"
	RatingL     Rating = "L"
	RatingAge10 Rating = "10"
	RatingAge12 Rating = "12"
	RatingAge14 Rating = "14"
	RatingAge16 Rating = "16"
	RatingAge18 Rating = "18"
)

var ratings = []Rating{RatingER, RatingL, RatingAge10, RatingAge12, RatingAge14, RatingAge16, RatingAge18}

// ParseRating 解析分级字符串，未知值返回 false。
func ParseRating(raw string) (Rating, bool) {
	candidate := Rating(strings.ToUpper(strings.TrimSpace(raw)))
	for _, r := range ratings {
		if r == candidate {
			return r, true
		}
	}
	return "", false
}
