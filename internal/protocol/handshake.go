package protocol

// Request methods handled by the build server.
const (
	MethodInitialize   = "build/initialize"
	MethodInitialized  = "build/initialized"
	MethodShutdown     = "build/shutdown"
	MethodExit         = "build/exit"
	MethodBuildTargets = "workspace/buildTargets"
	MethodCompile      = "buildTarget/compile"
)

type InitializeBuildParams struct {
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	BSPVersion  string `json:"bspVersion,omitempty"`
	RootURI     string `json:"rootUri,omitempty"`
}

type CompileProvider struct {
	LanguageIDs []string `json:"languageIds"`
}

type BuildServerCapabilities struct {
	CompileProvider *CompileProvider `json:"compileProvider,omitempty"`
}

type InitializeBuildResult struct {
	DisplayName  string                  `json:"displayName"`
	Version      string                  `json:"version"`
	BSPVersion   string                  `json:"bspVersion"`
	Capabilities BuildServerCapabilities `json:"capabilities"`
}

type BuildTargetCapabilities struct {
	CanCompile bool `json:"canCompile"`
	CanTest    bool `json:"canTest"`
	CanRun     bool `json:"canRun"`
}

type BuildTarget struct {
	ID            BuildTargetIdentifier   `json:"id"`
	DisplayName   string                  `json:"displayName,omitempty"`
	BaseDirectory string                  `json:"baseDirectory,omitempty"`
	LanguageIDs   []string                `json:"languageIds"`
	Capabilities  BuildTargetCapabilities `json:"capabilities"`
}

type WorkspaceBuildTargetsResult struct {
	Targets []BuildTarget `json:"targets"`
}

type CompileParams struct {
	Targets   []BuildTargetIdentifier `json:"targets"`
	OriginID  string                  `json:"originId,omitempty"`
	Arguments []string                `json:"arguments,omitempty"`
}

type CompileResult struct {
	OriginID   string     `json:"originId,omitempty"`
	StatusCode StatusCode `json:"statusCode"`
}
