// Package validator checks agent catalogs and reports the problems it finds.
//
// Validation never stops at the first problem. Every file is inspected and
// each problem becomes an [Issue] in a [Result]:
//
//	result, err := validator.CheckCatalog(os.DirFS("agents"), validator.Options{})
//	if err != nil {
//		return err
//	}
//	_ = validator.NewReporter(os.Stdout, validator.FormatText).Report(result)
//	if result.HasErrors() {
//		// fail the build
//	}
package validator
