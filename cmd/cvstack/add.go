package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/udbhavbalaji/cvstack/internal/ai"
	"github.com/udbhavbalaji/cvstack/internal/config"
	"github.com/udbhavbalaji/cvstack/internal/faults"
	"github.com/udbhavbalaji/cvstack/internal/prompt"
	"github.com/udbhavbalaji/cvstack/internal/scraper"
	"github.com/udbhavbalaji/cvstack/internal/types"
	"github.com/udbhavbalaji/cvstack/internal/ui"
	"github.com/udbhavbalaji/cvstack/internal/validate"
)

var addCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Scrape a job posting and start tracking it",
	Long:  "Scrapes the posting at the given LinkedIn URL, extracts structured details\nwith AI, and stores the job with status NOT APPLIED after confirmation.",
	Args:  cobra.MaximumNArgs(1),
	Run:   runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	if len(args) == 0 {
		faults.Terminate(faults.NewCLI("Missing required argument: url", "addJob"))
		return
	}
	url := args[0]

	jobID, err := validate.ParseJobURL(url)
	faults.Check(err, "addJob:parseURL")

	status, exists, err := store.Exists(ctx, jobID)
	faults.Check(err, "addJob:exists")
	if exists {
		faults.Terminate(faults.NewCLI(
			fmt.Sprintf("Job with id %d already exists. Current status: %s", jobID, status),
			"addJob:exists"))
		return
	}

	job := fetchJob(ctx, url, jobID)
	fmt.Println(ui.RenderJobDetail(job))

	confirmed, err := prompt.Confirm("Add this job?")
	faults.Check(err, "addJob:confirm")
	if !confirmed {
		ui.Infof("Job not added!")
		return
	}

	faults.Check(store.Insert(ctx, job), "addJob:insert")
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("%s Job added successfully\n", green(ui.IconPass))
}

// fetchJob runs the scrape-then-extract pipeline for a posting URL and
// returns the assembled job, terminating the process on any failure.
func fetchJob(ctx context.Context, url string, jobID int64) *types.JobApplication {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrMissingCredential) {
		faults.Handle(faults.ErrMissingAPIKey, faults.Context{Location: "fetchJob:loadConfig"})
		return nil
	}
	faults.Check(err, "fetchJob:loadConfig")

	sp := ui.NewSpinner("Scraping job posting...").Start()
	scraped, err := scraper.New().Scrape(ctx, url)
	if err != nil {
		faults.Handle(err, faults.Context{
			Location: "fetchJob:scrapeJob",
			Spinner:  sp,
			Source:   faults.SourceScraper,
			Context:  map[string]any{"url": url},
		})
		return nil
	}
	sp.Succeed(fmt.Sprintf("Scraped %q (%d words)", scraped.Title, scraped.WordCount))

	extractor, err := ai.New(cfg.AnthropicAPIKey)
	faults.Check(err, "fetchJob:newExtractor")

	sp = ui.NewSpinner("Extracting job details...").Start()
	ex, err := extractor.Extract(ctx, scraped.Title, scraped.CompanyName, scraped.Location, scraped.DescriptionText)
	if err != nil {
		faults.Handle(err, faults.Context{
			Location: "fetchJob:extractDetails",
			Spinner:  sp,
			Source:   faults.SourceAI,
		})
		return nil
	}
	sp.Succeed("Extracted job details")

	return buildJob(jobID, scraped, ex)
}

func buildJob(jobID int64, scraped *scraper.ScrapedJob, ex *ai.Extraction) *types.JobApplication {
	title := ex.Title
	if title == "" {
		title = scraped.Title
	}
	company := ex.CompanyName
	if company == "" {
		company = scraped.CompanyName
	}
	return &types.JobApplication{
		JobID:                   jobID,
		Title:                   title,
		CompanyName:             company,
		WorkArrangement:         types.WorkArrangement(ex.WorkArrangement),
		JobType:                 types.JobType(ex.JobType),
		LocationCity:            ex.LocationCity,
		LocationCountry:         ex.LocationCountry,
		DescriptionText:         scraped.DescriptionText,
		RequiredQualifications:  ex.RequiredQualifications,
		PreferredQualifications: ex.PreferredQualifications,
		TechnicalSkills:         ex.TechnicalSkills,
		NonTechnicalSkills:      ex.NonTechnicalSkills,
		SalaryMin:               ex.SalaryMin,
		SalaryMax:               ex.SalaryMax,
		SalaryCurrency:          types.SalaryCurrency(ex.SalaryCurrency),
		ImmigrationRequirements: ex.ImmigrationRequirements,
		LinguisticRequirements:  ex.LinguisticRequirements,
		Benefits:                ex.Benefits,
		PostedDate:              scraped.PostedDate,
		AppMethod:               types.MethodLinkedin,
		ApplicationLink:         scraped.URL,
		ApplicationStatus:       types.StatusNotApplied,
	}
}
