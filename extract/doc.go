/*
Package extract pulls a firmware version token out of the response body of a
management controller's “/xmldata?item=All” endpoint.

The response format differs across controller firmware generations, so there
are three strategies to choose from:

  - [XML] parses the body as an XML document and looks for the first FWRI
    (“firmware revision information”) element, taking its version child,
    version attribute, or own text, in this order.
  - [TagScan] searches the raw text case-insensitively for a marker, such as
    “<FWRI>”, and takes everything up to the next “<”.
  - [Pattern] applies a regular expression with a capture group for the
    version.

Callers normally pick a single strategy. [Chain] combines several strategies
into one that tries them in order, for those who know that their fleet of
controllers is a mixed bag.

Extractors never panic on arbitrary input; they return [ErrNoVersion] when the
body is understood but lacks a version, and [ErrParse] when the body can't be
understood at all.
*/
package extract
