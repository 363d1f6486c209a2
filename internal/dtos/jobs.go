// File: internal/dtos/jobs.go
package dtos

import "github.com/iyunix/go-supportchat/internal/services/jobfilter"

type JobFilterRequestDTO struct {
    Query string          `json:"query"`
    Jobs  []jobfilter.Job `json:"jobs"`
}

type JobFilterResponseDTO struct {
    JobIDs []string `json:"jobIds"`
}
