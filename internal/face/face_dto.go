package face

type EnrollRequest struct {
	Image string `json:"image" binding:"required"` // base64-encoded capture
	// EmployeeNo lets back-office tooling enroll on behalf of an employee;
	// defaults to the caller's own number.
	EmployeeNo string `json:"employee_no"`
}

type EnrollResponse struct {
	Enrolled   bool    `json:"enrolled"`
	Length     int     `json:"length"`
	Confidence float64 `json:"confidence"`
}

type AuthenticateRequest struct {
	Image string `json:"image" binding:"required"`
}

type AuthenticateResponse struct {
	Authenticated bool    `json:"authenticated"`
	Distance      float64 `json:"distance"`
	Confidence    float64 `json:"confidence"`
}

type AuthenticateLiveRequest struct {
	Frame1 string `json:"frame1" binding:"required"`
	Frame2 string `json:"frame2" binding:"required"`
	Frame3 string `json:"frame3" binding:"required"`
}

type AuthenticateLiveResponse struct {
	Authenticated bool    `json:"authenticated"`
	Distance      float64 `json:"distance"`
	Confidence    float64 `json:"confidence"`
	LivenessCheck string  `json:"liveness_check"`
	AvgFrameDist  float64 `json:"avg_frame_distance"`
}
