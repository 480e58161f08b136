package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wxdata/acis"
	"github.com/wxdata/acis/internal/reporter"
)

var (
	dataSid      string
	dataUID      int
	dataDate     string
	dataStart    string
	dataEnd      string
	dataInterval string
	dataElems    string
	dataFields   string
)

var stnDataCmd = &cobra.Command{
	Use:   "stndata",
	Short: "Fetch data for a single site",
	RunE:  runStnData,
}

func init() {
	stnDataCmd.Flags().StringVar(&dataSid, "sid", "", "Site identifier")
	stnDataCmd.Flags().IntVar(&dataUID, "uid", 0, "ACIS site UID (takes precedence over --sid)")
	stnDataCmd.Flags().StringVar(&dataDate, "date", "", "Single date (YYYY[-MM[-DD]])")
	stnDataCmd.Flags().StringVar(&dataStart, "start", "", "Range start date, or \"por\"")
	stnDataCmd.Flags().StringVar(&dataEnd, "end", "", "Range end date, or \"por\"")
	stnDataCmd.Flags().StringVar(&dataInterval, "interval", "", "Interval: dly, mly, yly")
	stnDataCmd.Flags().StringVar(&dataElems, "elems", "", "Comma-separated element names (required)")
	stnDataCmd.Flags().StringVar(&dataFields, "meta", "name", "Metadata fields to request")
}

func runStnData(cmd *cobra.Command, args []string) error {
	req := acis.NewStnDataRequest(theApp.client)

	location := acis.Params{}
	if dataUID != 0 {
		location["uid"] = dataUID
	} else if dataSid != "" {
		location["sid"] = dataSid
	}
	if err := req.Location(location); err != nil {
		return err
	}

	switch {
	case dataDate != "":
		if err := req.Dates(dataDate, ""); err != nil {
			return err
		}
	case dataStart != "":
		if err := req.Dates(dataStart, dataEnd); err != nil {
			return err
		}
	default:
		return fmt.Errorf("a date is required: --date or --start/--end")
	}

	if dataInterval != "" {
		if err := req.Interval(dataInterval); err != nil {
			return err
		}
	}

	elems := splitList(dataElems)
	if len(elems) == 0 {
		return fmt.Errorf("at least one element is required: --elems")
	}
	for _, name := range elems {
		req.AddElement(name, nil)
	}
	req.Metadata(splitList(dataFields)...)

	query, err := submit(cmd.Context(), theApp, "StnData", req)
	if err != nil {
		return err
	}
	result, err := acis.NewStnDataResult(query)
	if err != nil {
		return err
	}

	table := &reporter.Table{
		Title:   "StnData",
		Columns: append([]string{"uid", "date"}, result.Elems...),
		Rows:    formatRecords(result.Records()),
		Meta:    metaTable(result.Meta),
	}
	return writeReport(table)
}
