package clog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// leveledHandler 在 slog.Handler 之上挂一个 LevelVar，
// 让 Logger.SetLevel 能在运行期生效。
type leveledHandler struct {
	slog.Handler
	levelVar *slog.LevelVar
}

// newHandler 按配置组装 slog.Handler 链：
// sink -> HandlerOptions -> JSON/Text handler -> 可选着色层 -> 级别包装。
func newHandler(config *Config, options *options) (slog.Handler, error) {
	sink, err := openSink(config, options)
	if err != nil {
		return nil, err
	}

	levelVar := new(slog.LevelVar)
	levelVar.Set(configLevel(config.Level))

	opts := &slog.HandlerOptions{
		AddSource:   config.AddSource,
		Level:       levelVar,
		ReplaceAttr: attrRewriter(config),
	}

	var handler slog.Handler
	if strings.ToLower(config.Format) == "json" {
		handler = slog.NewJSONHandler(sink, opts)
	} else {
		newText := func(w io.Writer) slog.Handler {
			return slog.NewTextHandler(w, opts)
		}
		if config.EnableColor {
			handler = newColorHandler(newText, sink)
		} else {
			handler = newText(sink)
		}
	}

	return &leveledHandler{Handler: handler, levelVar: levelVar}, nil
}

// SetLevel 运行期调整级别，impl 层通过接口断言调到这里
func (h *leveledHandler) SetLevel(level Level) error {
	h.levelVar.Set(toSlogLevel(level))
	return nil
}

// Flush slog 标准 handler 是同步写的，没有待刷缓冲
func (h *leveledHandler) Flush() {}

// openSink 把 Output 配置解析成 io.Writer。
// "stdout"/"stderr" 以外的值按文件路径处理，"buffer" 仅测试用。
func openSink(config *Config, options *options) (io.Writer, error) {
	switch strings.ToLower(config.Output) {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "buffer":
		if options.buffer == nil {
			return nil, fmt.Errorf("buffer output requires options.buffer to be set")
		}
		return options.buffer, nil
	}
	return os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
}

// configLevel 把配置里的级别字符串转成 slog.Level。
// 字符串已由 Config.Validate 把关，这里失败只会发生在绕过校验的路径上，回退 info。
func configLevel(level string) slog.Level {
	l, err := ParseLevel(level)
	if err != nil {
		return slog.LevelInfo
	}
	return toSlogLevel(l)
}

// levelLabel 级别的展示名，FATAL 对应高于 Error 的自定义级别
func levelLabel(level slog.Level) string {
	switch {
	case level <= slog.LevelDebug:
		return "DEBUG"
	case level <= slog.LevelInfo:
		return "INFO"
	case level <= slog.LevelWarn:
		return "WARN"
	case level <= slog.LevelError:
		return "ERROR"
	}
	return "FATAL"
}

// attrRewriter 统一重写内建字段：级别转大写标签、时间固定格式、
// source 改写成短路径的 caller。
func attrRewriter(config *Config) func(groups []string, a slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		switch a.Key {
		case slog.LevelKey:
			a.Value = slog.StringValue(levelLabel(a.Value.Any().(slog.Level)))
		case slog.TimeKey:
			if a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().Format(TimeFormat))
			}
		case slog.SourceKey:
			if source, ok := a.Value.Any().(*slog.Source); ok {
				short := shortenSource(source.File, config.SourceRoot)
				return slog.String("caller", fmt.Sprintf("%s:%d", short, source.Line))
			}
		}
		return a
	}
}

// shortenSource 裁剪调用方文件路径。
// 优先按 SourceRoot 取相对路径，取不到时从路径里找项目名兜底。
func shortenSource(fileName, sourceRoot string) string {
	if sourceRoot != "" {
		rel, err := filepath.Rel(sourceRoot, fileName)
		if err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	if idx := strings.Index(fileName, "snowid"); idx != -1 {
		return fileName[idx:]
	}
	return fileName
}

// ============================================================================
// 彩色控制台输出
// ============================================================================

// ANSI 转义序列
const (
	ansiReset   = "\033[0m"
	ansiBold    = "\033[1m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
	ansiWhite   = "\033[37m"
	ansiGray    = "\033[90m"
	ansiBgRed   = "\033[41m"
)

// colorHandler 给 TextHandler 的输出上色。
//
// Handle 每次让一个临时 TextHandler 写进 buffer，解析一遍再重排着色。
// 走的是字符串后处理，只给开发环境的 console 格式用。
type colorHandler struct {
	newText func(io.Writer) slog.Handler
	writer  io.Writer
	attrs   []slog.Attr
	groups  []string
	mu      *sync.Mutex
}

func newColorHandler(newText func(io.Writer) slog.Handler, writer io.Writer) slog.Handler {
	return &colorHandler{
		newText: newText,
		writer:  writer,
		mu:      &sync.Mutex{},
	}
}

func (h *colorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.delegate(io.Discard).Enabled(ctx, level)
}

func (h *colorHandler) Handle(ctx context.Context, r slog.Record) error {
	var buf bytes.Buffer
	if err := h.delegate(&buf).Handle(ctx, r); err != nil {
		return err
	}

	line := h.paint(buf.String(), r.Level)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write([]byte(line))
	return err
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	next.attrs = append(next.attrs, attrs...)
	return next
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	next := h.clone()
	next.groups = append(next.groups, name)
	return next
}

// clone 复制 handler，attrs/groups 独立，mu 和 writer 共享
func (h *colorHandler) clone() *colorHandler {
	return &colorHandler{
		newText: h.newText,
		writer:  h.writer,
		attrs:   append([]slog.Attr(nil), h.attrs...),
		groups:  append([]string(nil), h.groups...),
		mu:      h.mu,
	}
}

// delegate 构建叠加了 attrs/groups 的底层 TextHandler
func (h *colorHandler) delegate(w io.Writer) slog.Handler {
	base := h.newText(w)
	if len(h.attrs) > 0 {
		base = base.WithAttrs(h.attrs)
	}
	for _, group := range h.groups {
		base = base.WithGroup(group)
	}
	return base
}

// paint 把 TextHandler 的一行输出重排成带颜色的布局：
//
//	15:48:17.340 INFO  | idgen/snowflake.go:98 > id minted	worker_id=1
func (h *colorHandler) paint(output string, level slog.Level) string {
	output = strings.TrimSpace(output)
	if output == "" {
		return "\n"
	}

	var (
		timeStr   string
		levelStr  string
		callerStr string
		msgStr    string
		attrs     []string
	)

	for _, pair := range h.splitPairs(output) {
		key, val, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		switch key {
		case "time":
			// 完整时间戳太长，控制台只留 HH:MM:SS.mmm
			if len(val) > 23 {
				timeStr = val[11:23]
			} else {
				timeStr = val
			}
		case "level":
			levelStr = val
		case "caller":
			callerStr = strings.TrimPrefix(val, "snowid/")
		case "msg":
			msgStr = val
		default:
			attrs = append(attrs, pair)
		}
	}

	var sb strings.Builder

	if timeStr != "" {
		sb.WriteString(ansiGray + timeStr + ansiReset + " ")
	}

	sb.WriteString(ansiBold + h.levelColor(level))
	fmt.Fprintf(&sb, "%-5s", levelStr)
	sb.WriteString(ansiReset + " ")

	sb.WriteString(ansiGray + "|" + ansiReset + " ")

	if callerStr != "" {
		sb.WriteString(ansiGray + callerStr + ansiReset + " ")
		sb.WriteString(ansiCyan + ">" + ansiReset + " ")
	}

	sb.WriteString(ansiWhite + msgStr + ansiReset + " ")

	if len(attrs) > 0 {
		sb.WriteString("\t")
		for i, attr := range attrs {
			if i > 0 {
				sb.WriteString(" ")
			}
			k, v, _ := strings.Cut(attr, "=")
			sb.WriteString(ansiCyan + k + ansiReset + "=" + v)
		}
	}

	return sb.String() + "\n"
}

// splitPairs 把 "k1=v1 k2=v2 ..." 拆成单个 kv，带引号的 value 里
// 允许出现空格。
func (h *colorHandler) splitPairs(line string) []string {
	var pairs []string
	var current strings.Builder
	inQuotes := false

	flush := func() {
		if current.Len() == 0 {
			return
		}
		pairs = append(pairs, cleanPair(current.String()))
		current.Reset()
	}

	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case c == '"':
			inQuotes = !inQuotes
			current.WriteByte(c)
		case c == ' ' && !inQuotes:
			flush()
		default:
			current.WriteByte(c)
		}
	}
	flush()

	return pairs
}

// cleanPair 修正 TextHandler 偶发的 key==value 形式，剥掉 %!(EXTRA 尾巴
func cleanPair(pair string) string {
	pair = strings.Replace(pair, "==", "=", 1)
	if idx := strings.Index(pair, "%!(EXTRA"); idx != -1 {
		pair = pair[:idx]
	}
	return pair
}

func (h *colorHandler) levelColor(level slog.Level) string {
	switch {
	case level <= slog.LevelDebug:
		return ansiMagenta
	case level <= slog.LevelInfo:
		return ansiGreen
	case level <= slog.LevelWarn:
		return ansiYellow
	case level <= slog.LevelError:
		return ansiBold + ansiRed
	}
	return ansiBgRed + ansiWhite + ansiBold
}
