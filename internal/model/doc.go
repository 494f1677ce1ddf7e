// Package model defines the core data structures used throughout
// the deanon review tool.
//
// # Dataset
//
// Dataset holds the CSV table under review. Only the text column is
// editable and only through SetText:
//
//	ds, _ := model.NewDataset(header, records, "open_nps_reason")
//	text, _ := ds.Text(0)
//	_ = ds.SetText(0, "fixed text")
//
// # Label
//
// Label is the replacement category chosen by the reviewer:
//
//	model.LabelPerson.Value("")      // "PERSON"
//	model.LabelRemove.Value("")      // ""
//	model.LabelCustom.Value("Acme")  // "Acme"
package model
