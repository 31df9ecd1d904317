package constant

// Stage keys accepted by the generation endpoint. "0" and "1" are the
// canonical combined stages; the legacy-* keys preserve the original
// four-step flow for older clients.
const (
	StageCombinedCurriculum = "0"
	StageCombinedPlan       = "1"
	StageParallel12         = "parallel-1-2"
	StageBatch              = "batch"
	StageLegacyCurriculum   = "legacy-0"
	StageLegacyObjectives   = "legacy-1"
	StageLegacyPlan         = "legacy-2"
	StageLegacyEvaluation   = "legacy-3"
)

// CurriculumNotFoundMarker is the literal the model emits when no
// standard in the corpus matches the requested topic.
const CurriculumNotFoundMarker = "ไม่พบ"

// MinutesPerPeriod is the length of one study period in Thai basic
// education.
const MinutesPerPeriod = 50

// Generation temperatures per stage family.
const (
	TemperatureCurriculum = 0.5
	TemperatureDistill    = 0.3
	TemperatureCreative   = 0.7
)

// KeyCompetencies are the fixed learner competencies attached to every
// objectives result, per the national core curriculum.
var KeyCompetencies = map[string]string{
	"5.1": "ความสามารถในการสื่อสาร",
	"5.2": "ความสามารถในการคิด",
	"5.3": "ความสามารถในการแก้ปัญหา",
	"5.4": "ความสามารถในการใช้ทักษะชีวิต",
}
