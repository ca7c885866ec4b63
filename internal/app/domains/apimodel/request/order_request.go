package request

// OrderRequest 订单校验/提交请求（DTO）
type OrderRequest struct {
	Email           string   `json:"email" binding:"omitempty,email" example:"jo@example.com"`
	Name            string   `json:"name" example:"Jo Smith"`
	Size            string   `json:"size" binding:"required" example:"8x10"`
	PaperStock      string   `json:"paper_stock" example:"100lb Matte"`
	Color           string   `json:"color" example:"white"`
	Finish          string   `json:"finish" example:"matte"`
	Quantity        int      `json:"quantity" binding:"gte=0" example:"10"`
	Filename        string   `json:"filename" binding:"required" example:"3f2a9c1d_art.png"`
	FullColor       *bool    `json:"full_color" example:"true"`
	RushType        string   `json:"rush_type" example:"rush"`
	InkType         string   `json:"ink_type" example:"cmyk"`
	SpecialServices []string `json:"special_services"`
	// WaitSeconds 提交时等待通知投递结果的秒数，0 表示不等待
	WaitSeconds int `json:"wait_seconds" binding:"gte=0,lte=30" example:"0"`
}
