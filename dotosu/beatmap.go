package dotosu

const (
	EARLY_VERSION_TIMING_OFFSET = 24
	MAX_MANIA_KEY_COUNT         = 18
	LATEST_VERSION              = 14

	DEFAULT_SLIDER_MULTIPLIER = 1.4
	DEFAULT_CIRCLE_SIZE       = 5.0
	DEFAULT_DIFFICULTY        = 5.0
)

type Beatmap struct {
	FormatVersion int
	Checksum      string // hex md5 of the decoded bytes, empty for Decode
	General       General
	Editor        Editor
	Metadata      Metadata
	Difficulty    Difficulty
	Colours       Colours

	Breaks          []BreakPeriod
	TimingPoints    []TimingPoint // source order
	HitObjects      []HitObject   // source order, HitObjects[i].ID() == i
	UnhandledEvents []string

	Bookmarks    []int
	BeatDivisor  int
	GridSize     int
	TimelineZoom float64
}

type General struct {
	AudioFilename            string
	AudioLeadIn              int
	PreviewTime              int
	SampleSet                string
	SampleVolume             int
	StackLeniency            float64
	Mode                     int
	LetterboxInBreaks        bool
	SpecialStyle             bool
	WidescreenStoryboard     bool
	EpilepsyWarning          bool
	SamplesMatchPlaybackRate bool
	Countdown                int
	CountdownOffset          int
}

type Editor struct{ DistanceSpacing float64 }

type Metadata struct {
	Title, TitleUnicode            string
	Artist, ArtistUnicode          string
	Creator, Version, Source, Tags string
	BeatmapID, BeatmapSetID        int
	BackgroundFile, VideoFile      string
}

type Difficulty struct {
	HPDrainRate, CircleSize, OverallDifficulty, ApproachRate float64
	SliderMultiplier, SliderTickRate                         float64
}

func defaultDifficulty() Difficulty {
	return Difficulty{
		HPDrainRate:       DEFAULT_DIFFICULTY,
		CircleSize:        DEFAULT_CIRCLE_SIZE,
		OverallDifficulty: DEFAULT_DIFFICULTY,
		ApproachRate:      DEFAULT_DIFFICULTY,
		SliderMultiplier:  DEFAULT_SLIDER_MULTIPLIER,
		SliderTickRate:    1,
	}
}

type RGB struct{ R, G, B uint8 }

type Colours struct {
	Combo               []RGB
	SliderBorder        *RGB
	SliderTrackOverride *RGB
}

type BreakPeriod struct{ Start, End float64 }

type TimingPoint struct {
	Time                     float64
	BeatLength               float64 // NaN when unparseable, negative for inherited points
	TimeSignature            int
	SampleSet                string
	CustomSampleBank         int
	SampleVolume             int
	TimingChange             bool
	Kiai                     bool
	OmitFirstBarSignature    bool
	SliderVelocityMultiplier float64
	ScrollSpeed              float64
}

// ---------- HitObject enums & typed variants ----------

type ObjectKind uint8

const (
	KindCircle ObjectKind = iota
	KindSlider
	KindSpinner
)

func (k ObjectKind) String() string {
	switch k {
	case KindSlider:
		return "slider"
	case KindSpinner:
		return "spinner"
	default:
		return "circle"
	}
}

type HitSoundFlags uint8

const (
	HitSoundNormal  HitSoundFlags = 1 << iota // 1
	HitSoundWhistle                           // 2
	HitSoundFinish                            // 4
	HitSoundClap                              // 8
)

type SampleSet uint8

const (
	SampleNone SampleSet = iota
	SampleNormal
	SampleSoft
	SampleDrum
)

type HitObjectTypeFlags int

const (
	TypeCircle     HitObjectTypeFlags = 1 << iota // 1
	TypeSlider                                    // 2
	TypeNewCombo                                  // 4
	TypeSpinner                                   // 8
	TypeComboSkip1                                // 16
	TypeComboSkip2                                // 32
	TypeComboSkip3                                // 64
)

// ComboSkip is the number of combo colours skipped by a new-combo object.
func (f HitObjectTypeFlags) ComboSkip() int {
	return int(f>>4) & 7
}

type Vec2 struct{ X, Y int }

type HitSampleSpec struct {
	NormalSet   SampleSet
	AdditionSet SampleSet
	Index       int // custom sample bank
	Volume      int
	Filename    string
}

type EdgeAdd struct {
	NormalSet   SampleSet
	AdditionSet SampleSet
}

type SliderPathType uint8

const (
	PathLinear SliderPathType = iota
	PathPerfect
	PathBezier
	PathCatmull
)

func (t SliderPathType) String() string {
	switch t {
	case PathPerfect:
		return "P"
	case PathBezier:
		return "B"
	case PathCatmull:
		return "C"
	default:
		return "L"
	}
}

// SliderPath holds every control point, the slider head first.
// Bezier segmentation is left to the curve generator.
type SliderPath struct {
	Type   SliderPathType
	Points []Vec2
}

type HitObject interface {
	ID() int
	Kind() ObjectKind
	StartTime() int
	NewCombo() bool
	Flags() HitObjectTypeFlags
	Pos() Vec2
	HitSound() HitSoundFlags
	Sample() HitSampleSpec
	Combo() (index, number int)

	// Resolve retires the object. There is no way back.
	Resolve()
	Resolved() bool
}

type BaseHO struct {
	Index       int
	PosXY       Vec2
	Time        int
	Type        HitObjectTypeFlags
	Sound       HitSoundFlags
	SampleHS    HitSampleSpec
	ComboIndex  int
	ComboNumber int

	resolved bool
}

func (b *BaseHO) ID() int                   { return b.Index }
func (b *BaseHO) StartTime() int            { return b.Time }
func (b *BaseHO) NewCombo() bool            { return (b.Type & TypeNewCombo) != 0 }
func (b *BaseHO) Flags() HitObjectTypeFlags { return b.Type }
func (b *BaseHO) Pos() Vec2                 { return b.PosXY }
func (b *BaseHO) HitSound() HitSoundFlags   { return b.Sound }
func (b *BaseHO) Sample() HitSampleSpec     { return b.SampleHS }
func (b *BaseHO) Combo() (int, int)         { return b.ComboIndex, b.ComboNumber }
func (b *BaseHO) Resolve()                  { b.resolved = true }
func (b *BaseHO) Resolved() bool            { return b.resolved }

type Circle struct{ BaseHO }

func (*Circle) Kind() ObjectKind { return KindCircle }

type Slider struct {
	BaseHO
	Path          SliderPath
	Slides        int // >= 1
	Length        float64
	EdgeSounds    []HitSoundFlags // head, repeats..., tail
	EdgeAdditions []EdgeAdd
}

func (*Slider) Kind() ObjectKind { return KindSlider }

type Spinner struct {
	BaseHO
	EndTime int
}

func (*Spinner) Kind() ObjectKind { return KindSpinner }
