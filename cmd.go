package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/isdelr/ecolearn/internal/app"
	"github.com/isdelr/ecolearn/internal/models"
	"github.com/isdelr/ecolearn/internal/pages"
	"github.com/isdelr/ecolearn/internal/view"
	"golang.org/x/term"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp        = errors.New("help provided")
	errNotSignedIn = errors.New("you are not signed in, run `ecolearn login` first")
)

type commandLine struct {
	app *app.App
	out io.Writer
	in  *bufio.Reader
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage: ecolearn <command> [flags]")
	fmt.Fprintln(cli.out)
	fmt.Fprintln(cli.out, "Account:")
	fmt.Fprintln(cli.out, "  login -email EMAIL                    - sign in, the password is prompted")
	fmt.Fprintln(cli.out, "  register -name NAME -email EMAIL      - create an account")
	fmt.Fprintln(cli.out, "  logout                                - sign out")
	fmt.Fprintln(cli.out, "  whoami                                - show the signed-in user")
	fmt.Fprintln(cli.out, "  profile [-name NAME -email EMAIL]     - show or edit your profile")
	fmt.Fprintln(cli.out)
	fmt.Fprintln(cli.out, "Learning:")
	fmt.Fprintln(cli.out, "  paths                                 - list your learning paths")
	fmt.Fprintln(cli.out, "  generate -topic TOPIC -level LEVEL    - generate a new path")
	fmt.Fprintln(cli.out, "  personalize -id ID [-level L] [-style S] [-interests a,b]")
	fmt.Fprintln(cli.out, "  lesson -id ID                         - read a lesson (n: next, p: previous, q: quit)")
	fmt.Fprintln(cli.out)
	fmt.Fprintln(cli.out, "Carbon:")
	fmt.Fprintln(cli.out, "  dashboard                             - overview and charts")
	fmt.Fprintln(cli.out, "  impact                                - carbon metrics and equivalences")
	fmt.Fprintln(cli.out, "  history                               - tree planting history")
	fmt.Fprintln(cli.out, "  calculate -hours H [-data MB] [-device D] [-energy E]")
	fmt.Fprintln(cli.out, "  offset -kg N                          - plant trees to offset N kg of CO2")
	fmt.Fprintln(cli.out)
	fmt.Fprintln(cli.out, "  serve                                 - run the fixture backend")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	name, rest := args[1], args[2:]
	switch name {
	case "login":
		return cli.login(ctx, rest)
	case "register":
		return cli.register(ctx, rest)
	case "logout":
		return cli.logout()
	case "whoami":
		return cli.whoami()
	case "dashboard":
		return cli.dashboard(ctx)
	case "impact":
		return cli.impact(ctx)
	case "paths":
		return cli.paths(ctx)
	case "generate":
		return cli.generate(ctx, rest)
	case "personalize":
		return cli.personalize(ctx, rest)
	case "lesson":
		return cli.lesson(ctx, rest)
	case "history":
		return cli.history(ctx)
	case "profile":
		return cli.profile(ctx, rest)
	case "calculate":
		return cli.calculate(ctx, rest)
	case "offset":
		return cli.offset(ctx, rest)
	case "help", "-h", "--help":
		cli.printUsage()
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}

// enter resolves path through the navigator and refuses protected screens when signed out.
func (cli *commandLine) enter(path string) (app.Resolution, error) {
	res := cli.app.Navigator.Resolve(path)
	if res.Redirected && res.Route == pages.RouteLogin && path != pages.RouteLogin {
		return res, errNotSignedIn
	}
	return res, nil
}

func (cli *commandLine) prompt(label string) (string, error) {
	fmt.Fprint(cli.out, label)
	line, err := cli.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (cli *commandLine) promptPassword(label string) (string, error) {
	fmt.Fprint(cli.out, label)
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) login(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("login", flag.ContinueOnError)
	email := cmd.String("email", "", "Account email. The password will be prompted next.")
	if err := cmd.Parse(args); err != nil {
		return errHelp
	}

	if *email == "" {
		var err error
		if *email, err = cli.prompt("Email: "); err != nil {
			return err
		}
	}
	pwd, err := cli.promptPassword("Password: ")
	if err != nil {
		return err
	}

	route, err := pages.NewLogin(cli.app.Session).Submit(ctx, models.Credentials{Email: *email, Password: pwd})
	if err != nil {
		return err
	}
	user, _ := cli.app.Session.User()
	fmt.Fprintf(cli.out, "Signed in as %s.\n\n", user.Name)
	return cli.show(ctx, route)
}

func (cli *commandLine) register(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("register", flag.ContinueOnError)
	name := cmd.String("name", "", "Full name.")
	email := cmd.String("email", "", "Account email. The password will be prompted next.")
	if err := cmd.Parse(args); err != nil {
		return errHelp
	}

	pwd, err := cli.promptPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := cli.promptPassword("Confirm password: ")
	if err != nil {
		return err
	}

	_, err = pages.NewRegister(cli.app.Session).Submit(ctx, models.RegisterForm{
		Name:            *name,
		Email:           *email,
		Password:        pwd,
		ConfirmPassword: confirm,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Account created. Sign in with `ecolearn login`.")
	return nil
}

func (cli *commandLine) logout() error {
	if err := cli.app.Session.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Signed out.")
	return nil
}

func (cli *commandLine) whoami() error {
	user, ok := cli.app.Session.User()
	if !ok {
		return errNotSignedIn
	}
	view.User(cli.out, user)
	return nil
}

// show renders the screen a controller navigated to.
func (cli *commandLine) show(ctx context.Context, route string) error {
	switch route {
	case pages.RouteDashboard:
		return cli.dashboard(ctx)
	case pages.RouteLearning:
		return cli.paths(ctx)
	default:
		return nil
	}
}

func (cli *commandLine) dashboard(ctx context.Context) error {
	if _, err := cli.enter(pages.RouteDashboard); err != nil {
		return err
	}
	d := pages.NewDashboard(cli.app.Carbon, cli.app.Session)
	defer d.Unmount()
	snap := d.Mount(ctx)
	if !view.Status(cli.out, snap) {
		return snap.Err
	}
	view.Dashboard(cli.out, snap.Data)
	return nil
}

func (cli *commandLine) impact(ctx context.Context) error {
	if _, err := cli.enter(pages.RouteImpact); err != nil {
		return err
	}
	p := pages.NewImpact(cli.app.Carbon)
	defer p.Unmount()
	snap := p.Mount(ctx)
	if !view.Status(cli.out, snap) {
		return snap.Err
	}
	view.Impact(cli.out, snap.Data)
	return nil
}

func (cli *commandLine) paths(ctx context.Context) error {
	if _, err := cli.enter(pages.RouteLearning); err != nil {
		return err
	}
	p := pages.NewLearning(cli.app.Learning)
	defer p.Unmount()
	snap := p.Mount(ctx)
	if !view.Status(cli.out, snap) {
		return snap.Err
	}
	view.LearningPaths(cli.out, snap.Data)
	return nil
}

func (cli *commandLine) generate(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("generate", flag.ContinueOnError)
	topic := cmd.String("topic", "", "What the path should teach.")
	level := cmd.String("level", models.LevelBeginner, "beginner, intermediate or advanced.")
	if err := cmd.Parse(args); err != nil {
		return errHelp
	}
	if _, err := cli.enter(pages.RouteLearning); err != nil {
		return err
	}

	p := pages.NewLearning(cli.app.Learning)
	defer p.Unmount()
	path, err := p.Generate(ctx, *topic, *level)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "New learning path:")
	view.LearningPathCard(cli.out, path)
	return nil
}

func (cli *commandLine) personalize(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("personalize", flag.ContinueOnError)
	id := cmd.String("id", "", "Learning path id.")
	level := cmd.String("level", "", "beginner, intermediate or advanced.")
	style := cmd.String("style", "", "Preferred learning style, e.g. visual.")
	interests := cmd.String("interests", "", "Comma-separated interests.")
	if err := cmd.Parse(args); err != nil {
		return errHelp
	}
	if _, err := cli.enter(pages.RouteLearning); err != nil {
		return err
	}

	prefs := models.PathPreferences{Level: *level, LearningStyle: *style}
	for _, interest := range strings.Split(*interests, ",") {
		if interest = strings.TrimSpace(interest); interest != "" {
			prefs.Interests = append(prefs.Interests, interest)
		}
	}

	p := pages.NewLearning(cli.app.Learning)
	defer p.Unmount()
	path, err := p.Personalize(ctx, *id, prefs)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Updated learning path:")
	view.LearningPathCard(cli.out, path)
	return nil
}

func (cli *commandLine) lesson(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("lesson", flag.ContinueOnError)
	id := cmd.String("id", "", "Learning path id.")
	if err := cmd.Parse(args); err != nil {
		return errHelp
	}
	if *id == "" {
		cmd.Usage()
		return errHelp
	}
	res, err := cli.enter(pages.RouteLearning + "/" + *id)
	if err != nil {
		return err
	}
	if res.Route != pages.RouteLesson {
		return fmt.Errorf("no lesson with id %q", *id)
	}

	l := pages.NewLesson(cli.app.Learning, res.Params["id"])
	defer l.Unmount()
	snap := l.Mount(ctx)
	if !view.Status(cli.out, snap) {
		return snap.Err
	}

	for {
		section, _, ok := l.Current()
		if !ok {
			return nil
		}
		position, total, _ := l.Progress()
		view.LessonSection(cli.out, snap.Data.Title, section, position, total)

		cmdLine, err := cli.prompt("\n[n]ext, [p]revious, [q]uit: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		fmt.Fprintln(cli.out)
		switch strings.ToLower(cmdLine) {
		case "n", "next", "":
			if route := l.Next(); route != "" {
				fmt.Fprintln(cli.out, "Lesson complete! 🎉")
				fmt.Fprintln(cli.out)
				return cli.show(ctx, route)
			}
		case "p", "previous":
			l.Previous()
		case "q", "quit":
			return nil
		}
	}
}

func (cli *commandLine) history(ctx context.Context) error {
	if _, err := cli.enter(pages.RoutePlantations); err != nil {
		return err
	}
	p := pages.NewPlantations(cli.app.Carbon)
	defer p.Unmount()
	snap := p.Mount(ctx)
	if !view.Status(cli.out, snap) {
		return snap.Err
	}
	view.PlantationHistory(cli.out, snap.Data, p.Summary())
	return nil
}

func (cli *commandLine) profile(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("profile", flag.ContinueOnError)
	name := cmd.String("name", "", "New display name.")
	email := cmd.String("email", "", "New email.")
	if err := cmd.Parse(args); err != nil {
		return errHelp
	}
	if _, err := cli.enter(pages.RouteProfile); err != nil {
		return err
	}

	p := pages.NewProfile(cli.app.Carbon, cli.app.Session)
	defer p.Unmount()
	if *name != "" || *email != "" {
		form := p.Form()
		if *name != "" {
			form.Name = *name
		}
		if *email != "" {
			form.Email = *email
		}
		if err := p.Save(form); err != nil {
			return err
		}
	}

	snap := p.Mount(ctx)
	if !view.Status(cli.out, snap) {
		return snap.Err
	}
	view.Profile(cli.out, p.User(), snap.Data, p.Rank())
	return nil
}

func (cli *commandLine) calculate(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("calculate", flag.ContinueOnError)
	hours := cmd.Float64("hours", 0, "Session duration in hours.")
	data := cmd.Float64("data", 0, "Data transferred in MB.")
	device := cmd.String("device", "laptop", "mobile, tablet, laptop or desktop.")
	energy := cmd.String("energy", "mixed", "renewable, mixed or fossil.")
	if err := cmd.Parse(args); err != nil {
		return errHelp
	}
	if _, err := cli.enter(pages.RouteImpact); err != nil {
		return err
	}

	calc, err := cli.app.Carbon.CalculateCarbon(ctx, models.SessionData{
		DurationHours: *hours,
		DataUsedMB:    *data,
		DeviceType:    *device,
		EnergySource:  *energy,
	})
	if err != nil {
		return err
	}
	view.Calculation(cli.out, calc)
	return nil
}

func (cli *commandLine) offset(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("offset", flag.ContinueOnError)
	kg := cmd.Float64("kg", 0, "Kilograms of CO2 to offset.")
	if err := cmd.Parse(args); err != nil {
		return errHelp
	}
	if _, err := cli.enter(pages.RoutePlantations); err != nil {
		return err
	}

	result, err := cli.app.Carbon.OffsetCarbon(ctx, *kg)
	if err != nil {
		return err
	}
	view.Offset(cli.out, result)
	return nil
}
