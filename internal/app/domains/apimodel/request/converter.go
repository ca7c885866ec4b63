package request

import (
	"printshop/internal/app/domains/entity/etorder"
)

// FileResolver 把上传文件名解析为本地路径
type FileResolver interface {
	Resolve(filename string) (string, error)
}

// ToOrderEntity 将 Request DTO 转换为领域对象，缺省字段在这里补齐
// 文件不存在不算格式错误，交给预检层给出结构化结果
func (r *OrderRequest) ToOrderEntity(files FileResolver) (*etorder.OrderRequest, error) {
	size, err := etorder.ParseSize(r.Size)
	if err != nil {
		return nil, err
	}

	path, _ := files.Resolve(r.Filename)

	return etorder.NewOrderRequest(etorder.Params{
		Email:           r.Email,
		Name:            r.Name,
		Size:            size,
		PaperStock:      orDefault(r.PaperStock, etorder.DefaultPaperStock),
		Color:           orDefault(r.Color, etorder.DefaultColor),
		Finish:          orDefault(r.Finish, etorder.DefaultFinish),
		Quantity:        quantityOrDefault(r.Quantity),
		ArtworkPath:     path,
		Filename:        r.Filename,
		FullColor:       r.FullColor == nil || *r.FullColor,
		RushType:        r.RushType,
		InkType:         r.InkType,
		SpecialServices: r.SpecialServices,
	})
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func quantityOrDefault(q int) int {
	if q == 0 {
		return 1
	}
	return q
}
