package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"complaint-desk/internal/client"
	"complaint-desk/internal/dto"
	"complaint-desk/internal/model"
	"complaint-desk/internal/ui"
)

const usage = `usage:
  complaintctl [-yes] departments list
  complaintctl [-yes] departments get|delete <id>
  complaintctl [-yes] departments create <name>
  complaintctl [-yes] departments update <id> <name>
  (issues accepts the same commands)
  complaintctl complaints list [-status s] [-dept id] [-issue id] [-sort column]
  complaintctl complaints get|delete <id>
  complaintctl complaints create -dept id -issue id -detail text [-status s]
  complaintctl complaints update <id> -dept id -issue id -detail text -status s
  complaintctl complaints export [-status s] [-dept id] [-issue id] [-o file]
`

var errUsage = errors.New("invalid usage")

type app struct {
	client *client.Client
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	yes    bool
}

func newApp(c *client.Client, in io.Reader, out, errOut io.Writer) *app {
	return &app{client: c, in: bufio.NewReader(in), out: out, errOut: errOut}
}

// run 执行一条命令，返回进程退出码
func (a *app) run(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("complaintctl", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	fs.BoolVar(&a.yes, "yes", false, "delete without confirmation")
	fs.Usage = func() { fmt.Fprint(a.errOut, usage) }
	if err := fs.Parse(args); err != nil {
		return 2
	}

	rest := fs.Args()
	if len(rest) < 2 {
		fs.Usage()
		return 2
	}

	var err error
	switch rest[0] {
	case "departments":
		err = a.departments(ctx, rest[1], rest[2:])
	case "issues":
		err = a.issues(ctx, rest[1], rest[2:])
	case "complaints":
		err = a.complaints(ctx, rest[1], rest[2:])
	default:
		err = errUsage
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprint(a.errOut, usage)
		return 2
	default:
		fmt.Fprintln(a.errOut, "error:", err)
		return 1
	}
}

// ── 部门 / 问题类型 ──

type singleFieldResource[T any] struct {
	noun    string
	schema  ui.FieldSchema
	columns []ui.Column[T]
	id      func(T) int
	value   func(T) string
	list    func(context.Context) ([]T, error)
	get     func(context.Context, int) (T, error)
	mutator ui.Mutator
	remove  func(context.Context, int) (string, error)
}

func (a *app) departments(ctx context.Context, action string, args []string) error {
	return runSingleField(ctx, a, singleFieldResource[model.Department]{
		noun:    "Department",
		schema:  ui.DepartmentNameSchema,
		columns: ui.DepartmentColumns(),
		id:      func(d model.Department) int { return d.DepttID },
		value:   func(d model.Department) string { return d.DepttName },
		list:    a.client.ListDepartments,
		get: func(ctx context.Context, id int) (model.Department, error) {
			d, err := a.client.GetDepartment(ctx, id)
			if err != nil {
				return model.Department{}, err
			}
			return *d, nil
		},
		mutator: ui.DepartmentMutator{Client: a.client},
		remove:  a.client.DeleteDepartment,
	}, action, args)
}

func (a *app) issues(ctx context.Context, action string, args []string) error {
	return runSingleField(ctx, a, singleFieldResource[model.Issue]{
		noun:    "Issue",
		schema:  ui.IssueTypeSchema,
		columns: ui.IssueColumns(),
		id:      func(i model.Issue) int { return i.IssueID },
		value:   func(i model.Issue) string { return i.IssueType },
		list:    a.client.ListIssues,
		get: func(ctx context.Context, id int) (model.Issue, error) {
			i, err := a.client.GetIssue(ctx, id)
			if err != nil {
				return model.Issue{}, err
			}
			return *i, nil
		},
		mutator: ui.IssueMutator{Client: a.client},
		remove:  a.client.DeleteIssue,
	}, action, args)
}

func runSingleField[T any](ctx context.Context, a *app, r singleFieldResource[T], action string, args []string) error {
	noun := strings.ToLower(r.noun)

	switch action {
	case "list":
		page := ui.NewPage(noun, r.list)
		page.Load(ctx)
		return renderPage(a, page, ui.NewTable(r.columns, r.id))

	case "get":
		id, err := argID(args, 1)
		if err != nil {
			return err
		}
		row, err := r.get(ctx, id)
		if err != nil {
			return errors.New(client.ErrorMessage(err))
		}
		tbl := ui.NewTable(r.columns, r.id)
		tbl.SetRows([]T{row})
		return renderTable(a.out, tbl)

	case "create":
		if len(args) != 1 {
			return errUsage
		}
		form := ui.NewForm(r.noun, r.schema, r.mutator)
		form.Value = args[0]
		return a.submit(ctx, form)

	case "update":
		if len(args) != 2 {
			return errUsage
		}
		id, err := argID(args[:1], 1)
		if err != nil {
			return err
		}
		current, err := r.get(ctx, id)
		if err != nil {
			return errors.New(client.ErrorMessage(err))
		}
		form := ui.NewForm(r.noun, r.schema, r.mutator)
		form.Edit(ui.Record{ID: id, Value: r.value(current)})
		form.Value = args[1]
		return a.submit(ctx, form)

	case "delete":
		id, err := argID(args, 1)
		if err != nil {
			return err
		}
		dialog := ui.NewDeleteDialog(noun,
			func(id int) string { return "#" + strconv.Itoa(id) },
			r.remove)
		return a.confirmDelete(ctx, dialog, id)

	default:
		return errUsage
	}
}

func (a *app) submit(ctx context.Context, form *ui.Form) error {
	if !form.Submit(ctx) {
		return errors.New(form.Error)
	}
	fmt.Fprintln(a.out, form.Message)
	return nil
}

// ── 投诉 ──

func (a *app) complaints(ctx context.Context, action string, args []string) error {
	switch action {
	case "list":
		fs := newFlagSet(a, "complaints list")
		filter := bindFilter(fs)
		sortKey := fs.String("sort", "", "sort column (e.g. deptt_name, status, created_at)")
		if err := fs.Parse(args); err != nil {
			return errUsage
		}
		page := ui.NewPage("complaint", func(ctx context.Context) ([]model.ComplaintView, error) {
			return a.client.ListComplaints(ctx, filter)
		})
		page.Load(ctx)
		tbl := ui.NewTable(ui.ComplaintColumns(), complaintID)
		if *sortKey != "" {
			tbl.ToggleSort(*sortKey)
		}
		return renderPage(a, page, tbl)

	case "get":
		id, err := argID(args, 1)
		if err != nil {
			return err
		}
		v, err := a.client.GetComplaint(ctx, id)
		if err != nil {
			return errors.New(client.ErrorMessage(err))
		}
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "ID\t%d\n", v.ComplaintID)
		fmt.Fprintf(tw, "Department\t%s (#%d)\n", v.DepttName, v.DepttID)
		fmt.Fprintf(tw, "Issue Type\t%s (#%d)\n", v.IssueType, v.IssueID)
		fmt.Fprintf(tw, "Status\t%s\n", ui.StatusBadge(v.Status))
		fmt.Fprintf(tw, "Created\t%s\n", v.CreatedAt.Local().Format("2006-01-02 15:04"))
		fmt.Fprintf(tw, "Details\t%s\n", v.ComplaintDetail)
		return tw.Flush()

	case "create", "update":
		var id int
		if action == "update" {
			if len(args) == 0 {
				return errUsage
			}
			var err error
			if id, err = argID(args[:1], 1); err != nil {
				return err
			}
			args = args[1:]
		}
		fs := newFlagSet(a, "complaints "+action)
		dept := fs.Int("dept", 0, "department id")
		issue := fs.Int("issue", 0, "issue type id")
		detail := fs.String("detail", "", "complaint detail")
		status := fs.String("status", "", "status (pending, in progress, resolved, closed)")
		if err := fs.Parse(args); err != nil {
			return errUsage
		}

		form := ui.NewComplaintForm(a.client)
		if action == "update" {
			current, err := a.client.GetComplaint(ctx, id)
			if err != nil {
				return errors.New(client.ErrorMessage(err))
			}
			form.Edit(*current)
		}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "dept":
				form.DepttID = *dept
			case "issue":
				form.IssueID = *issue
			case "detail":
				form.Detail = *detail
			case "status":
				form.Status = *status
			}
		})
		if !form.Submit(ctx) {
			return errors.New(formErrors(form.Errors))
		}
		fmt.Fprintln(a.out, form.Message)
		return nil

	case "delete":
		id, err := argID(args, 1)
		if err != nil {
			return err
		}
		dialog := ui.NewDeleteDialog("complaint",
			func(id int) string { return "#" + strconv.Itoa(id) },
			a.client.DeleteComplaint)
		return a.confirmDelete(ctx, dialog, id)

	case "export":
		fs := newFlagSet(a, "complaints export")
		filter := bindFilter(fs)
		output := fs.String("o", "", "output file (default: name suggested by server)")
		if err := fs.Parse(args); err != nil {
			return errUsage
		}
		data, name, err := a.client.ExportComplaints(ctx, filter)
		if err != nil {
			return errors.New(client.ErrorMessage(err))
		}
		if *output != "" {
			name = *output
		}
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Exported to %s\n", name)
		return nil

	default:
		return errUsage
	}
}

func complaintID(c model.ComplaintView) int { return c.ComplaintID }

// ── 公共渲染与交互 ──

func renderPage[T any](a *app, page *ui.Page[T], tbl *ui.Table[T]) error {
	switch page.State() {
	case ui.StateError:
		return fmt.Errorf("%s: %s", page.ErrorText(), client.ErrorMessage(page.Err()))
	case ui.StateReady:
		fmt.Fprintln(a.out, page.CountLabel())
		if page.IsEmpty() {
			fmt.Fprintln(a.out, page.EmptyText())
			return nil
		}
		tbl.SetRows(page.Rows())
		return renderTable(a.out, tbl)
	}
	return nil
}

func renderTable[T any](w io.Writer, tbl *ui.Table[T]) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tbl.Headers(), "\t"))
	for _, row := range tbl.Rows() {
		fmt.Fprintln(tw, strings.Join(tbl.Cells(row), "\t"))
	}
	return tw.Flush()
}

func (a *app) confirmDelete(ctx context.Context, dialog *ui.DeleteDialog[int], id int) error {
	dialog.Open(id)
	if !a.yes {
		fmt.Fprintf(a.out, "%s [y/N]: ", dialog.Prompt())
		answer, _ := a.in.ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			dialog.Cancel()
			fmt.Fprintln(a.out, "Cancelled")
			return nil
		}
	}
	msg, err := dialog.Confirm(ctx)
	if err != nil {
		return errors.New(dialog.Error)
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func newFlagSet(a *app, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func bindFilter(fs *flag.FlagSet) *dto.ComplaintListRequest {
	f := &dto.ComplaintListRequest{}
	fs.StringVar(&f.Status, "status", "", "filter by status")
	fs.IntVar(&f.DepttID, "dept", 0, "filter by department id")
	fs.IntVar(&f.IssueID, "issue", 0, "filter by issue type id")
	return f
}

func argID(args []string, want int) (int, error) {
	if len(args) != want {
		return 0, errUsage
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

func formErrors(errs map[string]string) string {
	parts := make([]string, 0, len(errs))
	for _, k := range []string{ui.FieldDepartment, ui.FieldIssue, ui.FieldDetail, ui.FieldStatus} {
		if msg, ok := errs[k]; ok {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}
