package workflow

// Log prefixes
const (
	LogPrefixProcess         = "internal.workflow.Process"
	LogPrefixRetrieveContext = "internal.workflow.retrieveContext"
	LogPrefixEnhance         = "internal.workflow.enhanceWithTools"
	LogPrefixSynthesize      = "internal.workflow.synthesizeResult"
	LogPrefixUpdateMemory    = "internal.workflow.updateMemory"
)

// Stage names, in execution order. They appear verbatim in diagnostics.
const (
	StageAnalyzeQuery     = "AnalyzeQuery"
	StageRetrieveContext  = "RetrieveContext"
	StageDecomposeTask    = "DecomposeTask"
	StageEnhanceWithTools = "EnhanceWithTools"
	StageProcessData      = "ProcessData"
	StageSynthesizeResult = "SynthesizeResult"
	StageUpdateMemory     = "UpdateMemory"
)
