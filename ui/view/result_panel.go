package view

import (
	"image"

	"github.com/soocke/digit-sketch-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ResultPanel shows the rendered prediction and the 28x28 model input.
type ResultPanel interface {
	UpdateResult(img image.Image)
	UpdateInput(img image.Image)
}

type resultPanel struct {
	resultLabel *LabelWidget
	inputLabel  *LabelWidget
	resultW     int
	resultH     int
	prevResult  *Img
	prevInput   *Img
}

// inputPreviewSize is the on-screen size of the magnified model input.
const inputPreviewSize = 112

// NewResultPanel grids the result label at (row, col) and the input
// preview inside the given frame.
func NewResultPanel(row, col, w, h int, inputFrame *FrameWidget) ResultPanel {
	blank := images.EncodePNG(image.NewRGBA(image.Rect(0, 0, w, h)))
	blankInput := images.EncodePNG(image.NewRGBA(image.Rect(0, 0, inputPreviewSize, inputPreviewSize)))
	resPhoto := NewPhoto(Data(blank))
	inPhoto := NewPhoto(Data(blankInput))
	result := Label(Image(resPhoto), Borderwidth(0))
	Grid(result, Row(row), Column(col), Padx("0.4m"), Pady("0.4m"))
	caption := Label(Txt("Model input"), Anchor("w"))
	input := Label(Image(inPhoto), Borderwidth(1), Relief("sunken"))
	if inputFrame != nil {
		Grid(caption, In(inputFrame), Row(0), Column(0), Sticky("w"), Padx("0.2m"))
		Grid(input, In(inputFrame), Row(1), Column(0), Sticky("w"), Padx("0.2m"), Pady("0.2m"))
	} else {
		Grid(caption, Row(row+2), Column(0), Sticky("w"), Padx("0.4m"))
		Grid(input, Row(row+3), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.2m"))
	}
	return &resultPanel{resultLabel: result, inputLabel: input, resultW: w, resultH: h, prevResult: resPhoto, prevInput: inPhoto}
}

func (v *resultPanel) UpdateResult(img image.Image) {
	if v.resultLabel == nil || img == nil {
		return
	}
	pngBytes := images.EncodePNG(images.ScaleTo(img, v.resultW, v.resultH))
	if v.prevResult != nil {
		v.prevResult.Delete()
	}
	v.prevResult = NewPhoto(Data(pngBytes))
	v.resultLabel.Configure(Image(v.prevResult))
}

// UpdateInput shows img magnified; nil resets the preview to blank.
func (v *resultPanel) UpdateInput(img image.Image) {
	if v.inputLabel == nil {
		return
	}
	if img == nil {
		img = image.NewRGBA(image.Rect(0, 0, inputPreviewSize, inputPreviewSize))
	}
	pngBytes := images.EncodePNG(images.ScaleTo(img, inputPreviewSize, inputPreviewSize))
	if v.prevInput != nil {
		v.prevInput.Delete()
	}
	v.prevInput = NewPhoto(Data(pngBytes))
	v.inputLabel.Configure(Image(v.prevInput))
}
