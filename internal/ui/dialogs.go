package ui

import (
	"errors"
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/vector233/AsgFlow/internal/automation"
	"github.com/vector233/AsgFlow/internal/i18n"
	"github.com/vector233/AsgFlow/internal/workflow"
)

// showStepDialog opens the add/edit dialog for the given step type.
// init is nil when adding; onSave receives the validated step.
func (g *GUI) showStepDialog(stepType workflow.StepType, init *workflow.Step, onSave func(workflow.Step)) {
	switch stepType {
	case workflow.TypeMouse:
		g.showMouseDialog(init, onSave)
	case workflow.TypeKeyboard:
		g.showKeyboardDialog(init, onSave)
	case workflow.TypeImage:
		g.showImageDialog(init, onSave)
	case workflow.TypeLoop:
		g.showLoopDialog(init, onSave)
	case workflow.TypeConditional:
		g.showConditionalDialog(init, onSave)
	}
}

func (g *GUI) showMouseDialog(init *workflow.Step, onSave func(workflow.Step)) {
	action := widget.NewSelect([]string{
		workflow.MouseClick, workflow.MouseRightClick, workflow.MouseHold, workflow.MouseRelease,
	}, nil)
	xEntry := widget.NewEntry()
	yEntry := widget.NewEntry()
	delayEntry := widget.NewEntry()

	if init != nil {
		action.SetSelected(init.Action)
		xEntry.SetText(strconv.Itoa(init.X))
		yEntry.SetText(strconv.Itoa(init.Y))
		delayEntry.SetText(formatDelay(init.Delay))
	} else {
		action.SetSelected(workflow.MouseClick)
		delayEntry.SetText(formatDelay(workflow.DefaultDelay))
	}

	captureBtn := widget.NewButton(i18n.T("capture_position"), func() {
		g.setStatus(i18n.T("capture_position_desc"))
		go func() {
			x, y, err := automation.GetMouseClickPosition(10)
			if err != nil {
				dialog.ShowError(err, g.window)
				return
			}
			xEntry.SetText(strconv.Itoa(x))
			yEntry.SetText(strconv.Itoa(y))
			g.setStatus(i18n.Tf("position_captured", x, y))
		}()
	})

	items := []*widget.FormItem{
		widget.NewFormItem(i18n.T("action"), action),
		widget.NewFormItem(i18n.T("coord_x"), xEntry),
		widget.NewFormItem(i18n.T("coord_y"), yEntry),
		widget.NewFormItem(i18n.T("delay_sec"), delayEntry),
		widget.NewFormItem("", captureBtn),
	}
	dialog.ShowForm(i18n.T("add_mouse"), i18n.T("ok"), i18n.T("cancel"), items, func(save bool) {
		if !save {
			return
		}
		x, errX := strconv.Atoi(xEntry.Text)
		y, errY := strconv.Atoi(yEntry.Text)
		delay, errD := strconv.ParseFloat(delayEntry.Text, 64)
		if errX != nil || errY != nil || errD != nil {
			g.showInvalid(fmt.Errorf("coordinates and delay must be numbers"))
			return
		}
		step, err := workflow.NewMouseStep(action.Selected, x, y, delay)
		if err != nil {
			g.showInvalid(err)
			return
		}
		onSave(step)
	}, g.window)
}

func (g *GUI) showKeyboardDialog(init *workflow.Step, onSave func(workflow.Step)) {
	action := widget.NewSelect([]string{
		workflow.KeyTypeText, workflow.KeyPressKey, workflow.KeyHotkey,
	}, nil)
	valueEntry := widget.NewEntry()
	delayEntry := widget.NewEntry()

	if init != nil {
		action.SetSelected(init.Action)
		valueEntry.SetText(init.Value)
		delayEntry.SetText(formatDelay(init.Delay))
	} else {
		action.SetSelected(workflow.KeyTypeText)
		delayEntry.SetText(formatDelay(workflow.DefaultDelay))
	}

	items := []*widget.FormItem{
		widget.NewFormItem(i18n.T("action"), action),
		widget.NewFormItem(i18n.T("value"), valueEntry),
		widget.NewFormItem(i18n.T("delay_sec"), delayEntry),
	}
	dialog.ShowForm(i18n.T("add_keyboard"), i18n.T("ok"), i18n.T("cancel"), items, func(save bool) {
		if !save {
			return
		}
		delay, err := strconv.ParseFloat(delayEntry.Text, 64)
		if err != nil {
			g.showInvalid(fmt.Errorf("delay must be a number"))
			return
		}
		step, err := workflow.NewKeyboardStep(action.Selected, valueEntry.Text, delay)
		if err != nil {
			g.showInvalid(err)
			return
		}
		onSave(step)
	}, g.window)
}

func (g *GUI) showImageDialog(init *workflow.Step, onSave func(workflow.Step)) {
	pathEntry := widget.NewEntry()
	delayEntry := widget.NewEntry()

	if init != nil {
		pathEntry.SetText(init.Path)
		delayEntry.SetText(formatDelay(init.Delay))
	} else {
		delayEntry.SetText(formatDelay(workflow.DefaultImageDelay))
	}

	browseBtn := widget.NewButton(i18n.T("browse"), func() {
		fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			pathEntry.SetText(reader.URI().Path())
			_ = reader.Close()
		}, g.window)
		fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
		fileDialog.Show()
	})

	items := []*widget.FormItem{
		widget.NewFormItem(i18n.T("image_file"), pathEntry),
		widget.NewFormItem("", browseBtn),
		widget.NewFormItem(i18n.T("delay_sec"), delayEntry),
	}
	dialog.ShowForm(i18n.T("add_image"), i18n.T("ok"), i18n.T("cancel"), items, func(save bool) {
		if !save {
			return
		}
		delay, err := strconv.ParseFloat(delayEntry.Text, 64)
		if err != nil {
			g.showInvalid(fmt.Errorf("delay must be a number"))
			return
		}
		step, err := workflow.NewImageStep(pathEntry.Text, delay)
		if err != nil {
			g.showInvalid(err)
			return
		}
		onSave(step)
	}, g.window)
}

func (g *GUI) showLoopDialog(init *workflow.Step, onSave func(workflow.Step)) {
	countEntry := widget.NewEntry()
	delayEntry := widget.NewEntry()

	// The sub-editor works on a private copy; it is only committed on OK
	var body []workflow.Step
	if init != nil {
		countEntry.SetText(strconv.Itoa(init.Count))
		delayEntry.SetText(formatDelay(init.Delay))
		body = workflow.CloneSteps(init.Steps)
	} else {
		countEntry.SetText("3")
		delayEntry.SetText(formatDelay(workflow.DefaultDelay))
	}

	bodyLabel := widget.NewLabel(bodySummary(body))
	editBtn := widget.NewButton(i18n.T("edit_steps"), func() {
		g.showSubEditor(i18n.T("loop_steps"), body, func(edited []workflow.Step) {
			body = edited
			bodyLabel.SetText(bodySummary(body))
		})
	})

	items := []*widget.FormItem{
		widget.NewFormItem(i18n.T("repeat_count"), countEntry),
		widget.NewFormItem(i18n.T("delay_sec"), delayEntry),
		widget.NewFormItem(i18n.T("loop_steps"), container.NewVBox(bodyLabel, editBtn)),
	}
	dialog.ShowForm(i18n.T("add_loop"), i18n.T("ok"), i18n.T("cancel"), items, func(save bool) {
		if !save {
			return
		}
		count, errC := strconv.Atoi(countEntry.Text)
		delay, errD := strconv.ParseFloat(delayEntry.Text, 64)
		if errC != nil || errD != nil {
			g.showInvalid(fmt.Errorf("repeat count and delay must be numbers"))
			return
		}
		step, err := workflow.NewLoopStep(count, body, delay)
		if err != nil {
			g.showInvalid(err)
			return
		}
		onSave(step)
	}, g.window)
}

func (g *GUI) showConditionalDialog(init *workflow.Step, onSave func(workflow.Step)) {
	delayEntry := widget.NewEntry()

	var cases []workflow.Case
	var elseSteps []workflow.Step
	if init != nil {
		delayEntry.SetText(formatDelay(init.Delay))
		cloned := workflow.CloneSteps([]workflow.Step{*init})[0]
		cases = cloned.Cases
		elseSteps = cloned.ElseSteps
	} else {
		delayEntry.SetText(formatDelay(workflow.DefaultDelay))
	}

	caseList := widget.NewList(
		func() int { return len(cases) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			c := cases[id]
			obj.(*widget.Label).SetText(fmt.Sprintf("'%s' -> %d steps", c.Value, len(c.Steps)))
		},
	)
	selectedCase := -1
	caseList.OnSelected = func(id widget.ListItemID) { selectedCase = id }

	addCaseBtn := widget.NewButton(i18n.T("add_case"), func() {
		g.showCaseDialog(nil, func(c workflow.Case) {
			cases = append(cases, c)
			caseList.Refresh()
		})
	})
	editCaseBtn := widget.NewButton(i18n.T("edit_step"), func() {
		if selectedCase < 0 || selectedCase >= len(cases) {
			return
		}
		idx := selectedCase
		g.showCaseDialog(&cases[idx], func(c workflow.Case) {
			cases[idx] = c
			caseList.Refresh()
		})
	})
	deleteCaseBtn := widget.NewButton(i18n.T("delete_case"), func() {
		if selectedCase < 0 || selectedCase >= len(cases) {
			return
		}
		cases = append(cases[:selectedCase], cases[selectedCase+1:]...)
		selectedCase = -1
		caseList.UnselectAll()
		caseList.Refresh()
	})

	elseLabel := widget.NewLabel(bodySummary(elseSteps))
	elseBtn := widget.NewButton(i18n.T("edit_steps"), func() {
		g.showSubEditor(i18n.T("else_steps"), elseSteps, func(edited []workflow.Step) {
			elseSteps = edited
			elseLabel.SetText(bodySummary(elseSteps))
		})
	})

	caseScroll := container.NewScroll(caseList)
	caseScroll.SetMinSize(fyne.NewSize(320, 160))

	content := container.NewVBox(
		widget.NewLabel(i18n.T("cases")),
		caseScroll,
		container.NewHBox(addCaseBtn, editCaseBtn, deleteCaseBtn),
		widget.NewSeparator(),
		widget.NewLabel(i18n.T("else_steps")),
		container.NewHBox(elseLabel, elseBtn),
		widget.NewSeparator(),
		container.NewHBox(widget.NewLabel(i18n.T("delay_sec")), delayEntry),
	)

	dialog.ShowCustomConfirm(i18n.T("add_conditional"), i18n.T("ok"), i18n.T("cancel"), content, func(save bool) {
		if !save {
			return
		}
		delay, err := strconv.ParseFloat(delayEntry.Text, 64)
		if err != nil {
			g.showInvalid(fmt.Errorf("delay must be a number"))
			return
		}
		step, err := workflow.NewConditionalStep(cases, elseSteps, delay)
		if err != nil {
			g.showInvalid(err)
			return
		}
		onSave(step)
	}, g.window)
}

func (g *GUI) showCaseDialog(init *workflow.Case, onSave func(workflow.Case)) {
	valueEntry := widget.NewEntry()

	var steps []workflow.Step
	if init != nil {
		valueEntry.SetText(init.Value)
		steps = workflow.CloneSteps(init.Steps)
	}

	stepsLabel := widget.NewLabel(bodySummary(steps))
	editBtn := widget.NewButton(i18n.T("edit_steps"), func() {
		g.showSubEditor(i18n.T("cases"), steps, func(edited []workflow.Step) {
			steps = edited
			stepsLabel.SetText(bodySummary(steps))
		})
	})

	items := []*widget.FormItem{
		widget.NewFormItem(i18n.T("case_value"), valueEntry),
		widget.NewFormItem("", container.NewVBox(stepsLabel, editBtn)),
	}
	dialog.ShowForm(i18n.T("add_case"), i18n.T("ok"), i18n.T("cancel"), items, func(save bool) {
		if !save {
			return
		}
		c, err := workflow.NewCase(valueEntry.Text, steps)
		if err != nil {
			g.showInvalid(err)
			return
		}
		onSave(c)
	}, g.window)
}

// showSubEditor edits a list of leaf steps. It receives its own copy of the
// list and hands the result back through onOK; closing without OK discards
// every change made inside.
func (g *GUI) showSubEditor(title string, initial []workflow.Step, onOK func([]workflow.Step)) {
	steps := workflow.CloneSteps(initial)

	list := widget.NewList(
		func() int { return len(steps) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(fmt.Sprintf("%d. %s", id+1, steps[id].Summary()))
		},
	)
	selected := -1
	list.OnSelected = func(id widget.ListItemID) { selected = id }

	addLeaf := func(stepType workflow.StepType) {
		g.showStepDialog(stepType, nil, func(step workflow.Step) {
			steps = append(steps, step)
			list.Refresh()
		})
	}

	buttons := container.NewVBox(
		widget.NewButton(i18n.T("add_mouse"), func() { addLeaf(workflow.TypeMouse) }),
		widget.NewButton(i18n.T("add_keyboard"), func() { addLeaf(workflow.TypeKeyboard) }),
		widget.NewButton(i18n.T("add_image"), func() { addLeaf(workflow.TypeImage) }),
		widget.NewSeparator(),
		widget.NewButton(i18n.T("edit_step"), func() {
			if selected < 0 || selected >= len(steps) {
				return
			}
			idx := selected
			step := steps[idx]
			g.showStepDialog(step.Type, &step, func(edited workflow.Step) {
				steps[idx] = edited
				list.Refresh()
			})
		}),
		widget.NewButton(i18n.T("delete_step"), func() {
			if selected < 0 || selected >= len(steps) {
				return
			}
			steps = append(steps[:selected], steps[selected+1:]...)
			selected = -1
			list.UnselectAll()
			list.Refresh()
		}),
	)

	listScroll := container.NewScroll(list)
	listScroll.SetMinSize(fyne.NewSize(360, 240))
	content := container.NewBorder(nil, nil, nil, buttons, listScroll)

	dialog.ShowCustomConfirm(title, i18n.T("ok"), i18n.T("cancel"), content, func(save bool) {
		if save {
			onOK(steps)
		}
	}, g.window)
}

func (g *GUI) showInvalid(err error) {
	dialog.ShowError(errors.New(i18n.Tf("invalid_step", err)), g.window)
}

func formatDelay(delay float64) string {
	return strconv.FormatFloat(delay, 'f', -1, 64)
}

func bodySummary(steps []workflow.Step) string {
	if len(steps) == 0 {
		return i18n.T("no_steps")
	}
	return fmt.Sprintf("%d steps", len(steps))
}
