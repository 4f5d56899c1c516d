package diag

// Handler — минимальный контракт получения проблем от фаз компиляции.
// Реализации: report.Reporter (BSP notifications), NopHandler.
type Handler interface {
	LogError(p Problem)
	LogWarning(p Problem)
	LogInfo(p Problem)
	// FileVisited marks that the compiler finished a file, whether or
	// not any problem was logged for it.
	FileVisited(path string)
}

// Log dispatches p to the handler entry point matching its severity.
func Log(h Handler, p Problem) {
	switch p.Severity {
	case SevError:
		h.LogError(p)
	case SevWarning:
		h.LogWarning(p)
	case SevInfo:
		h.LogInfo(p)
	}
}

// NopHandler discards everything.
type NopHandler struct{}

func (NopHandler) LogError(Problem)   {}
func (NopHandler) LogWarning(Problem) {}
func (NopHandler) LogInfo(Problem)    {}
func (NopHandler) FileVisited(string) {}
