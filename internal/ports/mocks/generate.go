//go:generate mockgen -source=../job_ingestor.go  -destination=./mock_job_ingestor.go  -package=mocks
//go:generate mockgen -source=../job_validator.go -destination=./mock_job_validator.go -package=mocks
//go:generate mockgen -source=../logger.go        -destination=./mock_logger.go        -package=mocks

package mocks
