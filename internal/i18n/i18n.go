package i18n

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Supported languages
const (
	LangEN = "en"
	LangZH = "zh"
)

var (
	mu          sync.RWMutex
	currentLang = detectLanguage()
)

// detectLanguage picks the startup language from the environment
func detectLanguage() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); strings.HasPrefix(strings.ToLower(v), "zh") {
			return LangZH
		}
	}
	return LangEN
}

// SetLanguage switches the active language
func SetLanguage(lang string) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := translations[lang]; ok {
		currentLang = lang
	}
}

// CurrentLanguage returns the active language
func CurrentLanguage() string {
	mu.RLock()
	defer mu.RUnlock()
	return currentLang
}

// T returns the translation for the given key
func T(key string) string {
	mu.RLock()
	lang := currentLang
	mu.RUnlock()

	if msg, ok := translations[lang][key]; ok {
		return msg
	}
	if msg, ok := translations[LangEN][key]; ok {
		return msg
	}
	return key
}

// Tf returns the formatted translation for the given key
func Tf(key string, args ...interface{}) string {
	return fmt.Sprintf(T(key), args...)
}

var translations = map[string]map[string]string{
	LangEN: {
		"app_title": "AsgFlow Workflow Automator",

		// Status line
		"status_idle":         "Status: Idle",
		"status_running":      "Status: Running...",
		"status_stopping":     "Status: Stopping...",
		"status_loop":         "Status: Running Loop %d/%d",
		"status_step":         "Status: Step %d/%d",
		"status_done":         "Status: Completed",
		"status_stopped":      "Status: Stopped",
		"status_failed":       "Status: Run failed: %v",
		"image_not_found":     "image not found '%s'",
		"image_search_error":  "image search unavailable: %v",
		"already_running":     "a workflow run is already in progress",
		"run_failed":          "Failed to run workflow: %v",
		"edit_while_running":  "Stop the workflow before editing steps.",

		// Main window
		"controls":        "Controls",
		"workflow_steps":  "Workflow Steps",
		"add_mouse":       "Add Mouse Step",
		"add_keyboard":    "Add Keyboard Step",
		"add_image":       "Add Image Step",
		"add_loop":        "Add Loop Block",
		"add_conditional": "Add Conditional Step",
		"edit_step":       "Edit Step",
		"delete_step":     "Delete Step",
		"save_workflow":   "Save Workflow",
		"load_workflow":   "Load Workflow",
		"record_session":  "Record Session",
		"run_workflow":    "Run Workflow",
		"stop_workflow":   "Stop",

		// Dialogs
		"action":            "Action",
		"coord_x":           "X",
		"coord_y":           "Y",
		"delay_sec":         "Delay (sec)",
		"value":             "Value",
		"image_file":        "Image file",
		"browse":            "Browse",
		"repeat_count":      "Repeat Count",
		"loop_steps":        "Steps to Repeat",
		"edit_steps":        "Edit Steps",
		"cases":             "Cases",
		"else_steps":        "Else Steps",
		"case_value":        "Match text",
		"add_case":          "Add Case",
		"delete_case":       "Delete Case",
		"ok":                "OK",
		"cancel":            "Cancel",
		"confirm":           "Confirm",
		"delete_title":      "Delete",
		"confirm_delete":    "Are you sure you want to delete this step?",
		"invalid_step":      "Invalid step: %v",
		"workflow_name":     "Workflow name",
		"workflow_saved":    "Workflow saved successfully.",
		"save_failed":       "Failed to save workflow: %v",
		"load_failed":       "Failed to load workflow: %v",
		"success":           "Success",
		"no_steps":          "(No steps. Click Edit to add some)",

		// Mouse position capture
		"capture_position":          "Get Current Mouse Position",
		"capture_position_desc":     "Click anywhere on screen to capture the position.",
		"click_to_get_coordinates":  "Click anywhere to capture the mouse position...",
		"click_timeout":             "timed out waiting for a mouse click",
		"position_captured":         "Captured position (%d, %d)",

		// Recorder
		"recording_hint":       "Recording. Press ESC or hold the right mouse button for %.0f seconds to stop.",
		"recorder_unavailable": "Input recording is unavailable on this system: %v",
		"recording_done":       "Recorded %d steps.",

		// Linux environment notice
		"linux_notice_title": "Linux environment notice",
		"wayland_warning":    "Detected Wayland session. Some desktop environments restrict simulated input. If hotkeys fail, try an X11 session or enable automation permissions.",
		"missing_packages":   "Missing packages: %s. Install for best compatibility.",
	},
	LangZH: {
		"app_title": "AsgFlow 工作流自动化",

		"status_idle":         "状态：空闲",
		"status_running":      "状态：运行中...",
		"status_stopping":     "状态：正在停止...",
		"status_loop":         "状态：循环执行 %d/%d",
		"status_step":         "状态：步骤 %d/%d",
		"status_done":         "状态：已完成",
		"status_stopped":      "状态：已停止",
		"status_failed":       "状态：运行失败：%v",
		"image_not_found":     "未找到图片 '%s'",
		"image_search_error":  "图像搜索不可用：%v",
		"already_running":     "工作流正在运行中",
		"run_failed":          "工作流运行失败：%v",
		"edit_while_running":  "请先停止工作流再编辑步骤。",

		"controls":        "控制面板",
		"workflow_steps":  "工作流步骤",
		"add_mouse":       "添加鼠标步骤",
		"add_keyboard":    "添加键盘步骤",
		"add_image":       "添加图像步骤",
		"add_loop":        "添加循环块",
		"add_conditional": "添加条件步骤",
		"edit_step":       "编辑步骤",
		"delete_step":     "删除步骤",
		"save_workflow":   "保存工作流",
		"load_workflow":   "加载工作流",
		"record_session":  "录制操作",
		"run_workflow":    "运行工作流",
		"stop_workflow":   "停止",

		"action":            "操作",
		"coord_x":           "X 坐标",
		"coord_y":           "Y 坐标",
		"delay_sec":         "延迟（秒）",
		"value":             "内容",
		"image_file":        "图片文件",
		"browse":            "浏览",
		"repeat_count":      "重复次数",
		"loop_steps":        "循环步骤",
		"edit_steps":        "编辑步骤",
		"cases":             "条件分支",
		"else_steps":        "否则执行",
		"case_value":        "匹配文本",
		"add_case":          "添加分支",
		"delete_case":       "删除分支",
		"ok":                "确定",
		"cancel":            "取消",
		"confirm":           "确认",
		"delete_title":      "删除",
		"confirm_delete":    "确定要删除此步骤吗？",
		"invalid_step":      "无效步骤：%v",
		"workflow_name":     "工作流名称",
		"workflow_saved":    "工作流保存成功。",
		"save_failed":       "保存工作流失败：%v",
		"load_failed":       "加载工作流失败：%v",
		"success":           "成功",
		"no_steps":          "（暂无步骤，点击编辑添加）",

		"capture_position":         "获取当前鼠标位置",
		"capture_position_desc":    "点击屏幕任意位置以捕获坐标。",
		"click_to_get_coordinates": "点击任意位置以捕获鼠标坐标...",
		"click_timeout":            "等待鼠标点击超时",
		"position_captured":        "已捕获坐标 (%d, %d)",

		"recording_hint":       "录制中。按 ESC 或按住鼠标右键 %.0f 秒后松开以停止。",
		"recorder_unavailable": "当前系统无法录制输入：%v",
		"recording_done":       "已录制 %d 个步骤。",

		"linux_notice_title": "Linux 环境提示",
		"wayland_warning":    "检测到 Wayland 会话。部分桌面环境限制模拟输入，如快捷键失效请尝试 X11 会话或开启自动化权限。",
		"missing_packages":   "缺少软件包：%s。建议安装以获得最佳兼容性。",
	},
}
