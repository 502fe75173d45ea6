package scene

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nyx-engine/config"
	"nyx-engine/models"
	"nyx-engine/schemas"
)

// Engine runs the full scene pipeline: split the description block,
// fold the continuity state across the segments, classify each frame
// and validate the assembled sequence against the frame-set schema
// before handing it to the caller.
type Engine struct {
	cfg      *config.Config
	log      *zap.Logger
	splitter *Splitter
}

// NewEngine creates an Engine. Nil arguments get the usual defaults.
func NewEngine(cfg *config.Config, log *zap.Logger) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		cfg:      cfg,
		log:      log,
		splitter: NewSplitter(cfg, log),
	}
}

// Frames builds the validated frame sequence for one scene description.
// prior, when non-nil, seeds the continuity state from an earlier call;
// the caller threads Sequence.FinalState forward for the next turn.
// The only possible error is models.ErrSchemaViolation: every input
// anomaly before emission has a local recovery.
func (e *Engine) Frames(text string, prior *models.SceneState) (*models.Sequence, error) {
	segments := e.splitter.Split(text)
	sceneSegments.Observe(float64(len(segments)))

	tracker := NewTracker(e.cfg, e.log)
	if prior != nil {
		tracker.Seed(*prior)
	}

	frames := make([]models.Frame, 0, len(segments))
	for _, segment := range segments {
		frames = append(frames, tracker.Advance(segment))
	}

	seq := &models.Sequence{
		ID:         uuid.New(),
		Frames:     frames,
		FinalState: tracker.State(),
	}
	if err := validateFrames(seq.Frames); err != nil {
		return nil, err
	}
	if err := schemas.ValidateFrameSet(schemas.BuildFrameSet(seq.Frames)); err != nil {
		return nil, err
	}

	framesEmittedTotal.Add(float64(len(frames)))
	e.log.Info("frame sequence emitted",
		zap.String("sequence_id", seq.ID.String()),
		zap.Int("frames", len(frames)),
	)
	return seq, nil
}

// validateFrames enforces the frame invariants the wire schema cannot
// express: strictly increasing indexes from 1, a known orientation,
// duplicate-free tags and the emphasized tag being a member of the set.
// A violation is fatal, never silently dropped.
func validateFrames(frames []models.Frame) error {
	for i, frame := range frames {
		if frame.Index != i+1 {
			return fmt.Errorf("%w: frame %d has index %d, want %d",
				models.ErrSchemaViolation, i, frame.Index, i+1)
		}
		if !frame.Orientation.Valid() {
			return fmt.Errorf("%w: frame %d has unknown orientation %q",
				models.ErrSchemaViolation, frame.Index, frame.Orientation)
		}
		seen := make(map[string]bool, len(frame.PromptTags))
		for _, tag := range frame.PromptTags {
			if seen[tag] {
				return fmt.Errorf("%w: frame %d repeats prompt tag %q",
					models.ErrSchemaViolation, frame.Index, tag)
			}
			seen[tag] = true
		}
		if frame.EmphasizedTag != nil && !seen[*frame.EmphasizedTag] {
			return fmt.Errorf("%w: frame %d emphasizes %q which is not among its tags",
				models.ErrSchemaViolation, frame.Index, *frame.EmphasizedTag)
		}
	}
	return nil
}
