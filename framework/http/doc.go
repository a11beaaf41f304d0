// Package http provides the request and response helpers used by the
// validation endpoints.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//
//	// Validation payload: JSON (numbers kept as json.Number) or form fields
//	data, err := req.Data()
//
//	// Bind a JSON / form body into a struct
//	var body struct {
//	    Data  validation.Data  `json:"data"`
//	    Rules validation.Rules `json:"rules"`
//	}
//	if err := req.Bind(&body); err != nil { ... }
//
//	name := req.RouteParam("name")
//	req.IsJSON()   // Content-Type application/json, or none at all
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.Success(data)             // 200 {"data": ...}
//	res.Error(400, "bad input")   // {"message": "bad input"}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.ValidationError(report)   // 422 {"message": "The given data was invalid.", "errors": {...}}
package http
