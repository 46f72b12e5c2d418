package response

import "github.com/gofiber/fiber/v3"

// ErrorBody is the only error shape the API writes.
type ErrorBody struct {
	Error string `json:"error"`
}

const (
	MessageUpdated = "更新成功"
	MessageDeleted = "删除成功"

	MessageBadRequest          = "请求格式错误"
	MessageNotFound            = "接口不存在"
	MessageSkillsQueryFailed   = "数据库查询失败"
	MessageSkillCreateFailed   = "添加技能失败"
	MessageSkillUpdateFailed   = "更新技能失败"
	MessageSkillDeleteFailed   = "删除技能失败"
	MessageNewsQueryFailed     = "获取新闻失败"
	MessageReviewFailed        = "AI 点评生成失败"
	MessageInternalServerError = "服务器内部错误"
	MessageError               = "请求失败"
)

// JSON writes data as-is; the API does not wrap payloads in an envelope.
func JSON(c fiber.Ctx, status int, data any) error {
	return c.Status(normalizeStatus(status)).JSON(data)
}

func Error(c fiber.Ctx, status int, message string) error {
	st := normalizeStatus(status)
	return c.Status(st).JSON(ErrorBody{Error: normalizeMessage(message, st)})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func normalizeMessage(message string, status int) string {
	if message != "" {
		return message
	}
	return DefaultMessageForStatus(status)
}

func DefaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusNotFound:
		return MessageNotFound
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}
