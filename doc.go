// Package cutcreator turns a stereo sample into a tempo-synced cut.
//
// A cut is a curve drawn over bar time whose value is a relative position
// in the sample. Rendering walks the output timeline, reads the curve at
// every output frame and reconstructs the sample at that fractional
// position with a windowed sinc kernel. A second, linear curve (the fader)
// gates the result.
//
// # Quick Start
//
// Open a record, or start from the default two bar ramp, and render it:
//
//	ed := cutcreator.NewEditor()
//	if err := ed.LoadSample("loops/break.wav"); err != nil {
//	    log.Fatal(err)
//	}
//	ed.Insert(cutcreator.LaneCut, 1.5, 0.25)
//	fmt.Println(ed.RunResample(ctx, "audio/re_sample.wav"))
//
// # Editing
//
// Every gesture on the [Editor] that changes knots records a checkpoint.
// Whole-list gestures (insert, delete, selection rectangles, multi-knot
// drags) store a snapshot of the previous knots; a single knot drag stores
// only that knot. [Editor.Undo] and [Editor.Redo] move between them.
// Settings such as looping, warping, quantization and bar count are not
// part of the history.
//
// The cut keeps two sentinel knots at each end. The inner pair marks the
// start and end of the editable range and cannot be moved in time or
// deleted; the outer pair only shapes the spline tangents and follows the
// inner pair's value.
//
// # Quality Presets
//
//   - [QualityDraft]: 4 taps, Hann window. Fast previews.
//   - [QualityStandard]: 10 taps, no window. The default.
//   - [QualityHigh]: 32 taps, Kaiser window.
//   - [QualityVeryHigh]: 64 taps, Kaiser window.
//
// [QualityCustom] uses the Taps, Window and KaiserBeta fields of
// [RenderConfig] directly.
//
// # Persistence
//
// [Editor.Save] writes the knots, grid, bar count, looping and warping
// flags, and the sample path and region as YAML, or JSON when the path ends
// in .json. [Open] reads them back.
//
// # Thread Safety
//
// An [Editor] must be used from one goroutine. [Editor.Submit] renders on
// copies, so the editor may be changed while a job runs; submitting again
// cancels the previous job.
package cutcreator
