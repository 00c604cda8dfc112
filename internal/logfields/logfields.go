package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRecipeKey  = "recipe_key"
	KeySessionID  = "session_id"
	KeySlot       = "slot"
	KeyQuery      = "query"
	KeyMode       = "mode"
	KeyPage       = "page"
	KeyCount      = "count"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyJob        = "job"
	KeySubject    = "subject"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyResponseSz = "response_size"
	KeyRemoteAddr = "remote_addr"
	KeyUserAgent  = "user_agent"
	KeyURL        = "url"
	KeyTool       = "tool"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RecipeKey(k string) slog.Attr    { return slog.String(KeyRecipeKey, k) }
func SessionID(id string) slog.Attr   { return slog.String(KeySessionID, id) }
func Slot(s string) slog.Attr         { return slog.String(KeySlot, s) }
func Query(q string) slog.Attr        { return slog.String(KeyQuery, q) }
func Mode(m string) slog.Attr         { return slog.String(KeyMode, m) }
func Page(p int) slog.Attr            { return slog.Int(KeyPage, p) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Job(name string) slog.Attr       { return slog.String(KeyJob, name) }
func Subject(s string) slog.Attr      { return slog.String(KeySubject, s) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func ResponseSize(n int) slog.Attr    { return slog.Int(KeyResponseSz, n) }
func RemoteAddr(a string) slog.Attr   { return slog.String(KeyRemoteAddr, a) }
func UserAgent(ua string) slog.Attr   { return slog.String(KeyUserAgent, ua) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Tool(name string) slog.Attr      { return slog.String(KeyTool, name) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
