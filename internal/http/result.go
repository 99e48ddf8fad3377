package httpapi

// 响应信封与原 dashboard 前端约定一致：
// - 失败统一 {success:false, message}
// - 成功为 {success:true, message?, ...}，列表接口直接返回数组
func Fail(message string) map[string]any {
	return map[string]any{"success": false, "message": message}
}

func Ok(message string, fields map[string]any) map[string]any {
	out := map[string]any{"success": true}
	if message != "" {
		out["message"] = message
	}
	for k, v := range fields {
		out[k] = v
	}
	return out
}
