package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MessageBodyTooLarge 请求体超限文案
const MessageBodyTooLarge = "Request body too large"

// fieldMessages 字段校验失败时的提示，键为 字段名.校验标签
var fieldMessages = map[string]string{
	"Language.required":    "Required",
	"AudioFormat.required": "Required",
	"AudioFormat.eq":       `Invalid literal value, expected "mp3"`,
	"AudioBase64.required": "Audio data is required",
	"Owner.required":       "Owner is required",
	"ID.required":          "Invalid id",
	"ID.min":               "Invalid id",
}

// ValidationMessage 将绑定错误转换为对外文案，多个字段错误以 ", " 连接
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return strings.Join(msgs, ", ")
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "Invalid JSON body"
	}

	// Field 为空表示顶层类型不符（如数组），不暴露 Go 类型名
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("Expected %s for %s", typeErr.Type.String(), typeErr.Field)
	}

	return "Invalid request body"
}

// IsBodyTooLarge 请求体超过 MaxBytesReader 限制
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func fieldMessage(fe validator.FieldError) string {
	if fe.StructField() == "Language" && fe.Tag() == "oneof" {
		return fmt.Sprintf("Invalid enum value. Expected %s, received '%v'", quoteOptions(fe.Param()), fe.Value())
	}
	if msg, ok := fieldMessages[fe.StructField()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("Invalid value for %s", fe.Field())
}

func quoteOptions(param string) string {
	opts := strings.Fields(param)
	for i, o := range opts {
		opts[i] = "'" + o + "'"
	}
	return strings.Join(opts, " | ")
}
