// Package marker tracks tools that were corrected a moment ago so operator
// clients can highlight them. Marks are short lived and purely presentational;
// losing them never affects counts or corrections.
package marker
