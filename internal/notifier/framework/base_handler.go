package framework

import (
	"encoding/json"
	"fmt"

	"printshop/pkg/errorutil"
)

// Job 标准 Job 结构
type Job struct {
	Payload *JobPayload `json:"payload"`
}

type JobPayload struct {
	Data *JobPayloadData `json:"data"`
}

type JobPayloadData struct {
	RequestID  string          `json:"request_id"`
	ActionType string          `json:"action_type"`
	ID         string          `json:"id"`
	Data       json.RawMessage `json:"data"`
}

// JobMeta Job 元信息
type JobMeta struct {
	RequestID  string `json:"request_id"`
	ActionType string `json:"action_type"`
	ID         string `json:"id"`
}

// Response 标准响应结构
type Response struct {
	Error     *errorutil.Error `json:"error"`
	Result    interface{}      `json:"result"`
	Processed bool             `json:"processed"`
	Meta      *JobMeta         `json:"meta,omitempty"`
}

// BaseHandler 基础设施方法，不包含业务流程控制
type BaseHandler struct {
	meta       *JobMeta
	rawData    []byte
	bizPayload json.RawMessage
}

// ParseJob 解析 lmstfy Job 标准结构，结构错误不可重试
func ParseJob(rawData []byte) (*BaseHandler, error) {
	var job Job
	if err := json.Unmarshal(rawData, &job); err != nil {
		return nil, errorutil.NonRetriableWithDetails("unmarshal job failed", err.Error())
	}
	if job.Payload == nil || job.Payload.Data == nil {
		return nil, errorutil.NonRetriable("invalid job structure: payload.data is nil")
	}

	data := job.Payload.Data
	if data.ActionType == "" {
		return nil, errorutil.NonRetriable("invalid job structure: action_type is empty")
	}

	return &BaseHandler{
		meta: &JobMeta{
			RequestID:  data.RequestID,
			ActionType: data.ActionType,
			ID:         data.ID,
		},
		rawData:    rawData,
		bizPayload: data.Data,
	}, nil
}

// DecodePayload 把业务数据解码到 v
func (b *BaseHandler) DecodePayload(v interface{}) error {
	if len(b.bizPayload) == 0 {
		return errorutil.NonRetriable("job payload data is empty")
	}
	if err := json.Unmarshal(b.bizPayload, v); err != nil {
		return errorutil.NonRetriableWithDetails("decode job payload failed", err.Error())
	}
	return nil
}

// WrapResponse 包装标准响应；err 为 nil 时视为已处理
func (b *BaseHandler) WrapResponse(output interface{}, err error) ([]byte, error) {
	resp := &Response{
		Error:     errorutil.Wrap(err),
		Result:    output,
		Processed: err == nil,
		Meta:      b.meta,
	}

	data, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		return nil, fmt.Errorf("marshal response failed: %w", marshalErr)
	}
	return data, nil
}

// GetMeta 获取 meta
func (b *BaseHandler) GetMeta() *JobMeta {
	return b.meta
}

// GetRawData 获取原始数据
func (b *BaseHandler) GetRawData() []byte {
	return b.rawData
}
