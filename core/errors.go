package core

import (
	"errors"
	"fmt"
)

// StageError 是管道的统一错误类型。
//
// 设计原则：
//   - 每个错误都归属到首先发现它的环节（Stage）
//   - 错误携带代码（Code）便于边界层映射状态码
//   - 下游协作方的失败通过 Err 保留原因链，不被吞掉
type StageError struct {
	Stage   string // 发现错误的环节，如 "classifier"、"matcher"
	Code    string // 错误代码，如 "MATCH"、"NOT_FOUND"
	Message string
	Err     error // 底层原因（可为 nil）
}

func (e *StageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

func (e *StageError) Unwrap() error { return e.Err }

// 错误代码常量，对应管道的错误分类。
const (
	CodeCatalogLoad    = "CATALOG_LOAD"   // 目录加载失败（启动期致命）
	CodeClassification = "CLASSIFICATION" // 分类失败（仅限输入不合法）
	CodeRewrite        = "REWRITE"        // 改写失败（引用了目录外的 persona）
	CodeMatch          = "MATCH"          // 匹配失败（商品存储故障）
	CodeNotFound       = "NOT_FOUND"      // 目录中不存在的 persona
	CodeInvalidInput   = "INVALID_INPUT"  // 请求自身不合法
)

// AsStageError 提取错误链中的 StageError，不存在则返回 (nil, false)。
func AsStageError(err error) (*StageError, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func hasCode(err error, code string) bool {
	if se, ok := AsStageError(err); ok {
		return se.Code == code
	}
	return false
}

// IsCatalogLoad 检查错误是否为目录加载失败。
func IsCatalogLoad(err error) bool { return hasCode(err, CodeCatalogLoad) }

// IsClassification 检查错误是否为分类失败。
func IsClassification(err error) bool { return hasCode(err, CodeClassification) }

// IsRewrite 检查错误是否为查询改写失败。
func IsRewrite(err error) bool { return hasCode(err, CodeRewrite) }

// IsMatch 检查错误是否为候选匹配失败。
func IsMatch(err error) bool { return hasCode(err, CodeMatch) }

// IsNotFound 检查错误是否为 persona 不存在。
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsInvalidInput 检查错误是否为请求不合法。
func IsInvalidInput(err error) bool { return hasCode(err, CodeInvalidInput) }

// NewCatalogLoadError 创建目录加载错误。
func NewCatalogLoadError(message string, err error) *StageError {
	return &StageError{Stage: "catalog", Code: CodeCatalogLoad, Message: message, Err: err}
}

// NewClassificationError 创建分类错误。
func NewClassificationError(message string, err error) *StageError {
	return &StageError{Stage: "classifier", Code: CodeClassification, Message: message, Err: err}
}

// NewRewriteError 创建查询改写错误。
func NewRewriteError(message string, err error) *StageError {
	return &StageError{Stage: "rewriter", Code: CodeRewrite, Message: message, Err: err}
}

// NewMatchError 创建候选匹配错误。
func NewMatchError(message string, err error) *StageError {
	return &StageError{Stage: "matcher", Code: CodeMatch, Message: message, Err: err}
}

// NewNotFoundError 创建 persona 未找到错误。
func NewNotFoundError(id string) *StageError {
	return &StageError{Stage: "catalog", Code: CodeNotFound, Message: fmt.Sprintf("persona %q not found", id)}
}

// NewInvalidInputError 创建请求不合法错误。
func NewInvalidInputError(stage, message string) *StageError {
	return &StageError{Stage: stage, Code: CodeInvalidInput, Message: message}
}

// 存储层通用错误。
var (
	// ErrStoreNotFound 表示 key/记录不存在
	ErrStoreNotFound = errors.New("store: not found")

	// ErrSignalNotFound 表示该用户没有历史信号
	ErrSignalNotFound = errors.New("signal: not found")
)
