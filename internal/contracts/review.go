package contracts

import "time"

// Review 商品评价
type Review struct {
	ID          string    `json:"id,omitempty"`
	ProductID   string    `json:"productId"`
	Type        string    `json:"type,omitempty"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	AuthorName  string    `json:"authorName"`
	AuthorEmail string    `json:"authorEmail,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// ReviewPatch 评价局部更新
type ReviewPatch struct {
	Rating     *int    `json:"rating,omitempty"`
	Comment    *string `json:"comment,omitempty"`
	AuthorName *string `json:"authorName,omitempty"`
	VideoURL   *string `json:"videoUrl,omitempty"`
}

// Apply 合并局部更新
func (p ReviewPatch) Apply(r Review) Review {
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if p.Comment != nil {
		r.Comment = *p.Comment
	}
	if p.AuthorName != nil {
		r.AuthorName = *p.AuthorName
	}
	if p.VideoURL != nil {
		r.VideoURL = *p.VideoURL
	}
	return r
}
