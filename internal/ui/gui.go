package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/vector233/AsgFlow/internal/automation"
	"github.com/vector233/AsgFlow/internal/engine"
	"github.com/vector233/AsgFlow/internal/i18n"
	"github.com/vector233/AsgFlow/internal/recorder"
	"github.com/vector233/AsgFlow/internal/workflow"
)

// GUI holds the main window state
type GUI struct {
	window      fyne.Window
	wf          workflow.Workflow
	stepList    *widget.List
	statusLabel *widget.Label
	runButton   *widget.Button
	controller  *engine.Controller
	store       *workflow.Store
	selected    int
}

// RunGUI starts the graphical user interface
func RunGUI() {
	a := app.New()
	a.Settings().SetTheme(theme.DefaultTheme())
	w := a.NewWindow(i18n.T("app_title"))
	w.Resize(fyne.NewSize(900, 600))

	gui := &GUI{
		window:   w,
		store:    workflow.NewStore(""),
		selected: -1,
	}
	gui.statusLabel = widget.NewLabel(i18n.T("status_idle"))

	gui.controller = engine.NewController(automation.NewRobot(), engine.Hooks{
		OnStep: func(index int) {
			gui.stepList.Select(index)
		},
		OnIteration: func(i, count int) {
			gui.setStatus(i18n.Tf("status_loop", i, count))
		},
		OnState: func(s engine.State) {
			gui.onRunState(s)
		},
		OnStatus: func(text string) {
			gui.setStatus(text)
		},
	})

	gui.initStepList()

	content := container.NewBorder(
		nil,
		gui.statusLabel,
		gui.createControls(),
		nil,
		container.NewScroll(gui.stepList),
	)
	w.SetContent(content)

	gui.showEnvironmentNotices()
	w.ShowAndRun()
}

// initStepList builds the workflow listbox
func (g *GUI) initStepList() {
	g.stepList = widget.NewList(
		func() int {
			return len(g.wf)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(fmt.Sprintf("%d. %s", id+1, g.wf[id].Summary()))
		},
	)
	g.stepList.OnSelected = func(id widget.ListItemID) {
		g.selected = id
	}
	g.stepList.OnUnselected = func(id widget.ListItemID) {
		if g.selected == id {
			g.selected = -1
		}
	}
}

// createControls builds the left button panel
func (g *GUI) createControls() fyne.CanvasObject {
	g.runButton = widget.NewButtonWithIcon(i18n.T("run_workflow"), theme.MediaPlayIcon(), func() {
		g.toggleRun()
	})

	return container.NewVBox(
		widget.NewLabel(i18n.T("controls")),
		widget.NewButton(i18n.T("add_mouse"), func() { g.addStep(workflow.TypeMouse) }),
		widget.NewButton(i18n.T("add_keyboard"), func() { g.addStep(workflow.TypeKeyboard) }),
		widget.NewButton(i18n.T("add_image"), func() { g.addStep(workflow.TypeImage) }),
		widget.NewSeparator(),
		widget.NewButton(i18n.T("add_loop"), func() { g.addStep(workflow.TypeLoop) }),
		widget.NewButton(i18n.T("add_conditional"), func() { g.addStep(workflow.TypeConditional) }),
		widget.NewSeparator(),
		widget.NewButton(i18n.T("edit_step"), func() { g.editSelectedStep() }),
		widget.NewButton(i18n.T("delete_step"), func() { g.deleteSelectedStep() }),
		widget.NewSeparator(),
		widget.NewButtonWithIcon(i18n.T("record_session"), theme.MediaRecordIcon(), func() { g.recordSession() }),
		widget.NewSeparator(),
		widget.NewButtonWithIcon(i18n.T("save_workflow"), theme.DocumentSaveIcon(), func() { g.saveWorkflow() }),
		widget.NewButtonWithIcon(i18n.T("load_workflow"), theme.FolderOpenIcon(), func() { g.loadWorkflow() }),
		widget.NewSeparator(),
		g.runButton,
	)
}

func (g *GUI) setStatus(text string) {
	g.statusLabel.SetText(text)
}

// onRunState keeps the run button in sync with the controller
func (g *GUI) onRunState(s engine.State) {
	switch s {
	case engine.StateRunning:
		g.runButton.SetText(i18n.T("stop_workflow"))
		g.runButton.SetIcon(theme.MediaStopIcon())
	case engine.StateIdle:
		g.runButton.SetText(i18n.T("run_workflow"))
		g.runButton.SetIcon(theme.MediaPlayIcon())
		g.stepList.UnselectAll()
	}
}

func (g *GUI) toggleRun() {
	if g.controller.Running() {
		g.controller.Stop()
		return
	}
	if err := g.controller.Start(g.wf); err != nil {
		dialog.ShowError(errors.New(i18n.Tf("run_failed", err)), g.window)
	}
}

// editingAllowed rejects workflow edits while a run is active
func (g *GUI) editingAllowed() bool {
	if g.controller.Running() {
		dialog.ShowInformation(i18n.T("app_title"), i18n.T("edit_while_running"), g.window)
		return false
	}
	return true
}

func (g *GUI) addStep(stepType workflow.StepType) {
	if !g.editingAllowed() {
		return
	}
	g.showStepDialog(stepType, nil, func(step workflow.Step) {
		g.wf = append(g.wf, step)
		g.stepList.Refresh()
	})
}

func (g *GUI) editSelectedStep() {
	if !g.editingAllowed() || g.selected < 0 || g.selected >= len(g.wf) {
		return
	}
	idx := g.selected
	step := g.wf[idx]
	g.showStepDialog(step.Type, &step, func(edited workflow.Step) {
		// Replace wholesale; steps are never mutated in place
		g.wf[idx] = edited
		g.stepList.Refresh()
	})
}

func (g *GUI) deleteSelectedStep() {
	if !g.editingAllowed() || g.selected < 0 || g.selected >= len(g.wf) {
		return
	}
	idx := g.selected
	dialog.ShowConfirm(i18n.T("delete_title"), i18n.T("confirm_delete"), func(yes bool) {
		if !yes {
			return
		}
		g.wf = append(g.wf[:idx], g.wf[idx+1:]...)
		g.selected = -1
		g.stepList.UnselectAll()
		g.stepList.Refresh()
	}, g.window)
}

// recordSession captures live input and appends the normalized steps
func (g *GUI) recordSession() {
	if !g.editingAllowed() {
		return
	}

	opts := recorder.Options{}
	hint := i18n.Tf("recording_hint", 2.0)
	info := dialog.NewInformation(i18n.T("record_session"), hint, g.window)
	info.SetOnClosed(func() {
		go func() {
			steps, err := recorder.New(recorder.NewHookSource(), opts).Record()
			if err != nil {
				dialog.ShowError(errors.New(i18n.Tf("recorder_unavailable", err)), g.window)
				return
			}
			g.wf = append(g.wf, steps...)
			g.stepList.Refresh()
			g.setStatus(i18n.Tf("recording_done", len(steps)))
		}()
	})
	info.Show()
}

func (g *GUI) saveWorkflow() {
	nameEntry := widget.NewEntry()
	items := []*widget.FormItem{widget.NewFormItem(i18n.T("workflow_name"), nameEntry)}
	dialog.ShowForm(i18n.T("save_workflow"), i18n.T("ok"), i18n.T("cancel"), items, func(save bool) {
		if !save {
			return
		}
		if _, err := g.store.Save(nameEntry.Text, g.wf); err != nil {
			dialog.ShowError(errors.New(i18n.Tf("save_failed", err)), g.window)
			return
		}
		dialog.ShowInformation(i18n.T("success"), i18n.T("workflow_saved"), g.window)
	}, g.window)
}

func (g *GUI) loadWorkflow() {
	if !g.editingAllowed() {
		return
	}

	paths, err := g.store.List()
	if err != nil {
		dialog.ShowError(errors.New(i18n.Tf("load_failed", err)), g.window)
		return
	}

	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = strings.TrimSuffix(filepath.Base(p), ".json")
	}

	presetList := widget.NewList(
		func() int { return len(names) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(names[id])
		},
	)

	content := container.NewScroll(presetList)
	content.SetMinSize(fyne.NewSize(350, 300))
	listDialog := dialog.NewCustom(i18n.T("load_workflow"), i18n.T("cancel"), content, g.window)

	presetList.OnSelected = func(id widget.ListItemID) {
		wf, err := g.store.Load(paths[id])
		if err != nil {
			dialog.ShowError(errors.New(i18n.Tf("load_failed", err)), g.window)
			return
		}
		g.wf = wf
		g.selected = -1
		g.stepList.Refresh()
		listDialog.Hide()
	}
	listDialog.Show()
}

// showEnvironmentNotices warns about platform limitations at startup
func (g *GUI) showEnvironmentNotices() {
	notices := automation.EnvironmentNotices()
	if len(notices) == 0 {
		return
	}
	dialog.ShowInformation(i18n.T("linux_notice_title"), strings.Join(notices, "\n\n"), g.window)
}
